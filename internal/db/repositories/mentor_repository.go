package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/models/entities"
)

// ErrDuplicateMentorEmail signals that an application already exists for
// the email, whether caught by the pre-check or by the unique index when
// two submissions race.
var ErrDuplicateMentorEmail = errors.New("mentor application already exists for this email")

type MentorRepository struct {
	db *gorm.DB
}

func NewMentorRepository(db *gorm.DB) *MentorRepository {
	return &MentorRepository{db: db}
}

// Insert stores a new application. Uniqueness-by-email is enforced twice:
// an existence check inside the transaction for the common case, and the
// unique index on email for the race where two submissions pass the check
// concurrently. Both surface as ErrDuplicateMentorEmail.
func (r *MentorRepository) Insert(ctx context.Context, mentor *entities.Mentor) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Mentor
		err := tx.Where("email = ?", mentor.Email).First(&existing).Error
		if err == nil {
			return ErrDuplicateMentorEmail
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(mentor).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMentorEmail
	}
	return err
}

func (r *MentorRepository) FindByID(ctx context.Context, id string) (*entities.Mentor, error) {
	var mentor entities.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *MentorRepository) FindByEmail(ctx context.Context, email string) (*entities.Mentor, error) {
	var mentor entities.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &mentor, nil
}

// FindAll returns applications newest-first, optionally approved only.
func (r *MentorRepository) FindAll(ctx context.Context, approvedOnly bool) ([]entities.Mentor, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if approvedOnly {
		query = query.Where("status = ?", constants.MentorApproved)
	}

	var mentors []entities.Mentor
	if err := query.Find(&mentors).Error; err != nil {
		return nil, err
	}
	return mentors, nil
}

// UpdateStatus sets the review status and returns the fresh record.
func (r *MentorRepository) UpdateStatus(ctx context.Context, id string, status constants.MentorStatus) (*entities.Mentor, error) {
	res := r.db.WithContext(ctx).Model(&entities.Mentor{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MentorRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entities.Mentor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
