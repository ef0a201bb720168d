package repositories

import (
	"context"

	"gorm.io/gorm"

	"alumnihub/portal/internal/models/entities"
)

type StoryRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) Insert(ctx context.Context, story *entities.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *StoryRepository) FindByID(ctx context.Context, id string) (*entities.Story, error) {
	var story entities.Story
	if err := r.db.WithContext(ctx).First(&story, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// FindAll returns stories newest-first, optionally published only.
func (r *StoryRepository) FindAll(ctx context.Context, publishedOnly bool) ([]entities.Story, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var stories []entities.Story
	if err := query.Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// FindByAuthorEmail returns the author's own submissions, newest-first,
// published or not.
func (r *StoryRepository) FindByAuthorEmail(ctx context.Context, email string) ([]entities.Story, error) {
	var stories []entities.Story
	err := r.db.WithContext(ctx).
		Where("author_email = ?", email).
		Order("created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *StoryRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*entities.Story, error) {
	res := r.db.WithContext(ctx).Model(&entities.Story{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// TogglePublished flips is_published in place and returns the fresh
// record.
func (r *StoryRepository) TogglePublished(ctx context.Context, id string) (*entities.Story, error) {
	res := r.db.WithContext(ctx).Model(&entities.Story{}).
		Where("id = ?", id).
		Update("is_published", gorm.Expr("NOT is_published"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entities.Story{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
