package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"alumnihub/portal/internal/models/entities"
)

type InternshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) *InternshipRepository {
	return &InternshipRepository{db: db}
}

func (r *InternshipRepository) Insert(ctx context.Context, internship *entities.Internship) error {
	return r.db.WithContext(ctx).Create(internship).Error
}

func (r *InternshipRepository) FindByID(ctx context.Context, id string) (*entities.Internship, error) {
	var internship entities.Internship
	if err := r.db.WithContext(ctx).First(&internship, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &internship, nil
}

// FindAll returns listings newest-first. With activeOnly the filter is
// deadline >= now, evaluated at call time; "active" is never stored.
func (r *InternshipRepository) FindAll(ctx context.Context, activeOnly bool, now time.Time) ([]entities.Internship, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("deadline >= ?", now)
	}

	var internships []entities.Internship
	if err := query.Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

func (r *InternshipRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entities.Internship{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
