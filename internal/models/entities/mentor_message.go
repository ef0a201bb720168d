package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MentorMessage is a student's message to an approved mentor. Read flips
// false -> true exactly once and never back.
type MentorMessage struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	MentorID     string    `gorm:"column:mentor_id;not null;index"`
	StudentID    string    `gorm:"column:student_id;not null"`
	StudentName  string    `gorm:"column:student_name;not null"`
	StudentEmail string    `gorm:"column:student_email;not null"`
	Message      string    `gorm:"column:message;not null"`
	Read         bool      `gorm:"column:read;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MentorMessage) TableName() string {
	return "mentor_messages"
}

func (m *MentorMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
