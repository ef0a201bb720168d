package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is an admin-curated community event. Active/inactive is an
// independent toggle; edits never change it.
type Event struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Date        time.Time `gorm:"column:date;not null"`
	Location    string    `gorm:"column:location;not null"`
	Image       *string   `gorm:"column:image"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
