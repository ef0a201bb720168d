package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
)

// Mentor is an alumni mentorship application. At most one record exists
// per email, enforced by the unique index.
type Mentor struct {
	ID                string                 `gorm:"column:id;primaryKey;type:uuid"`
	UserID            string                 `gorm:"column:user_id;not null;index"`
	Email             string                 `gorm:"column:email;not null;uniqueIndex"`
	Name              string                 `gorm:"column:name;not null"`
	Specializations   []string               `gorm:"column:specializations;serializer:json;not null"`
	Experience        string                 `gorm:"column:experience;not null"`
	Bio               string                 `gorm:"column:bio;not null"`
	Graduated         string                 `gorm:"column:graduated;not null"`
	Branch            string                 `gorm:"column:branch;not null"`
	Company           *string                `gorm:"column:company"`
	RoleTitle         *string                `gorm:"column:role_title"`
	LinkedIn          *string                `gorm:"column:linkedin"`
	Availability      []string               `gorm:"column:availability;serializer:json"`
	MentorshipFormats []string               `gorm:"column:mentorship_formats;serializer:json"`
	MentorshipTopics  []string               `gorm:"column:mentorship_topics;serializer:json"`
	MaxMentees        int                    `gorm:"column:max_mentees;not null;default:1"`
	Status            constants.MentorStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Mentor) TableName() string {
	return "mentors"
}

func (m *Mentor) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
