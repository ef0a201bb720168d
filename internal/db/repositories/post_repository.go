package repositories

import (
	"context"

	"gorm.io/gorm"

	"alumnihub/portal/internal/models/entities"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Insert(ctx context.Context, post *entities.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAll returns the feed newest-first, comments included.
func (r *PostRepository) FindAll(ctx context.Context) ([]entities.Post, error) {
	var posts []entities.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID string) ([]entities.Post, error) {
	var posts []entities.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*entities.Post, error) {
	res := r.db.WithContext(ctx).Model(&entities.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// IncrementLikes bumps the counter in place. The increment happens inside
// the store so concurrent likers never lose updates to a
// read-modify-write race.
func (r *PostRepository) IncrementLikes(ctx context.Context, id string) (*entities.Post, error) {
	res := r.db.WithContext(ctx).Model(&entities.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// AppendComment adds a comment to the post's append-only thread and
// returns the fresh post.
func (r *PostRepository) AppendComment(ctx context.Context, comment *entities.Comment) (*entities.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post entities.Post
		if err := tx.Select("id").First(&post, "id = ?", comment.PostID).Error; err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, comment.PostID)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entities.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&entities.Comment{}, "post_id = ?", id).Error
	})
}
