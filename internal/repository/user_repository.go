package repository

import (
	"context"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// Upsert inserts the user or refreshes its profile fields, keyed by
	// the identity provider's subject id.
	Upsert(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	CountAll(ctx context.Context) (int64, error)
	CountRecentByDay(ctx context.Context, windowDays int) ([]DayCount, error)
	SetDB(db *gorm.DB)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
		}).
		Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *userRepository) CountRecentByDay(ctx context.Context, windowDays int) ([]DayCount, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []DayCount
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS count").
		Where("created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)", windowDays).
		Group("DATE(created_at)").
		Order("DATE(created_at)").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
