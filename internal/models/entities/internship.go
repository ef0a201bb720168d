package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
)

// Internship is an admin-posted opening. "Active" is derived from the
// deadline at read time and never stored.
type Internship struct {
	ID          string                   `gorm:"column:id;primaryKey;type:uuid"`
	Title       string                   `gorm:"column:title;not null"`
	Company     string                   `gorm:"column:company;not null"`
	Location    string                   `gorm:"column:location;not null"`
	Type        constants.InternshipType `gorm:"column:type;not null"`
	Duration    string                   `gorm:"column:duration;not null"`
	Stipend     string                   `gorm:"column:stipend;not null"`
	Description string                   `gorm:"column:description;not null"`
	Deadline    time.Time                `gorm:"column:deadline;not null"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Internship) TableName() string {
	return "internships"
}

func (i *Internship) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether applications are still open at the given
// instant (deadline >= now).
func (i *Internship) IsActive(now time.Time) bool {
	return !i.Deadline.Before(now)
}
