package repositories

import (
	"context"

	"gorm.io/gorm"

	"alumnihub/portal/internal/models/entities"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Insert(ctx context.Context, event *entities.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	var event entities.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindAll returns events newest-date-first, optionally active only.
func (r *EventRepository) FindAll(ctx context.Context, activeOnly bool) ([]entities.Event, error) {
	query := r.db.WithContext(ctx).Order("date DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var events []entities.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindRecent returns upcoming-first active events for the landing page.
func (r *EventRepository) FindRecent(ctx context.Context, limit int) ([]entities.Event, error) {
	var events []entities.Event
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Update applies the given column changes and returns the fresh record.
// is_active is never part of updates; the toggle owns that column.
func (r *EventRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*entities.Event, error) {
	res := r.db.WithContext(ctx).Model(&entities.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// ToggleActive flips is_active in place and returns the fresh record.
func (r *EventRepository) ToggleActive(ctx context.Context, id string) (*entities.Event, error) {
	res := r.db.WithContext(ctx).Model(&entities.Event{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entities.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
