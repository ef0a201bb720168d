package repositories

import (
	"context"

	"gorm.io/gorm"

	"alumnihub/portal/internal/models/entities"
)

type MentorMessageRepository struct {
	db *gorm.DB
}

func NewMentorMessageRepository(db *gorm.DB) *MentorMessageRepository {
	return &MentorMessageRepository{db: db}
}

func (r *MentorMessageRepository) Insert(ctx context.Context, message *entities.MentorMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MentorMessageRepository) FindByID(ctx context.Context, id string) (*entities.MentorMessage, error) {
	var message entities.MentorMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindByMentor returns a mentor's inbox, newest-first.
func (r *MentorMessageRepository) FindByMentor(ctx context.Context, mentorID string) ([]entities.MentorMessage, error) {
	var messages []entities.MentorMessage
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead sets read=true. Writing true over true is a no-op in effect, so
// repeated calls are idempotent.
func (r *MentorMessageRepository) MarkRead(ctx context.Context, id string) (*entities.MentorMessage, error) {
	res := r.db.WithContext(ctx).Model(&entities.MentorMessage{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}
