package repository

import (
	"context"
	"errors"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// DayCount is one bucket of a day-grouped count query. Days without any
// rows are absent from the result, never zero-filled.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	ListAll(ctx context.Context) ([]model.Listing, error)
	ListByUser(ctx context.Context, userID string) ([]model.Listing, error)
	// Update applies fields to the listing iff it is owned by userID.
	// Returns gorm.ErrRecordNotFound when the row is absent or owned by
	// someone else, so non-owners cannot probe for existence.
	Update(ctx context.Context, id, userID string, fields map[string]interface{}) (*model.Listing, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountRecentByDay(ctx context.Context, windowDays int) ([]DayCount, error)
	SetDB(db *gorm.DB)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var listing model.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListAll(ctx context.Context) ([]model.Listing, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var listings []model.Listing
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ListByUser(ctx context.Context, userID string) ([]model.Listing, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var listings []model.Listing
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, id, userID string, fields map[string]interface{}) (*model.Listing, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var listing model.Listing
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&listing).Error; err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&listing).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &listing, nil
}

func (r *listingRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Listing{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *listingRepository) CountAll(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Listing{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *listingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("status = ?", status).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *listingRepository) CountRecentByDay(ctx context.Context, windowDays int) ([]DayCount, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []DayCount
	if err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS count").
		Where("created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)", windowDays).
		Group("DATE(created_at)").
		Order("DATE(created_at)").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
