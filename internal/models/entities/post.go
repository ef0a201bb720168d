package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a community feed entry. Likes only ever increment and comments
// only ever append; nothing about a post is moderated after creation
// except admin deletion.
type Post struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid"`
	Title         string    `gorm:"column:title;not null"`
	Content       string    `gorm:"column:content;not null"`
	Author        string    `gorm:"column:author;not null"`
	AuthorID      string    `gorm:"column:author_id;not null;index"`
	AuthorEmail   *string   `gorm:"column:author_email"`
	Image         *string   `gorm:"column:image"`
	Likes         int       `gorm:"column:likes;not null;default:0"`
	Tags          []string  `gorm:"column:tags;serializer:json"`
	IsStudentPost bool      `gorm:"column:is_student_post;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Comments []Comment `gorm:"foreignKey:PostID"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Comment is an append-only child of a post.
type Comment struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	PostID    string    `gorm:"column:post_id;not null;index"`
	Content   string    `gorm:"column:content;not null"`
	Author    string    `gorm:"column:author;not null"`
	AuthorID  string    `gorm:"column:author_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "post_comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
