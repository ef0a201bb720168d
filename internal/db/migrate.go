package db

import (
	"fmt"

	"gorm.io/gorm"

	"alumnihub/portal/internal/models/entities"
)

// Migrate applies the schema for every portal entity.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&entities.Event{},
		&entities.Story{},
		&entities.Mentor{},
		&entities.MentorMessage{},
		&entities.Post{},
		&entities.Comment{},
		&entities.Internship{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
