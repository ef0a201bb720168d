package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Story is an alumni-submitted success story. Submissions always start
// unpublished; only an admin flips IsPublished.
type Story struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	Title          string    `gorm:"column:title;not null"`
	Content        string    `gorm:"column:content;not null"`
	Author         string    `gorm:"column:author;not null"`
	AuthorEmail    string    `gorm:"column:author_email;index"`
	GraduationYear *string   `gorm:"column:graduation_year"`
	Branch         *string   `gorm:"column:branch"`
	Image          *string   `gorm:"column:image"`
	IsPublished    bool      `gorm:"column:is_published;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Story) TableName() string {
	return "stories"
}

func (s *Story) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
