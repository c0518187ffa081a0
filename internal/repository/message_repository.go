package repository

import (
	"context"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	// FindByListingAndParticipant returns every message on the listing
	// where userID is sender or receiver, oldest first.
	FindByListingAndParticipant(ctx context.Context, listingID, userID string) ([]model.Message, error)
	// FindByParticipant returns every message where userID is sender or
	// receiver across all listings, oldest first.
	FindByParticipant(ctx context.Context, userID string) ([]model.Message, error)
	ListAll(ctx context.Context) ([]model.Message, error)
	CountAll(ctx context.Context) (int64, error)
	CountRecentByDay(ctx context.Context, windowDays int) ([]DayCount, error)
	SetDB(db *gorm.DB)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) FindByListingAndParticipant(ctx context.Context, listingID, userID string) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("listing_id = ? AND (sender_id = ? OR receiver_id = ?)", listingID, userID, userID).
		Order("sent_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) FindByParticipant(ctx context.Context, userID string) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("sent_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) ListAll(ctx context.Context) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Order("sent_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) CountAll(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *messageRepository) CountRecentByDay(ctx context.Context, windowDays int) ([]DayCount, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []DayCount
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("DATE_FORMAT(sent_at, '%Y-%m-%d') AS date, COUNT(*) AS count").
		Where("sent_at >= DATE_SUB(NOW(), INTERVAL ? DAY)", windowDays).
		Group("DATE(sent_at)").
		Order("DATE(sent_at)").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
