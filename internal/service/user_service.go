package service

import (
	"context"
	"errors"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
	"gorm.io/gorm"
)

// LoginProfile is what the identity provider tells us about the caller on
// each authenticated request.
type LoginProfile struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

type UserService interface {
	// UpsertFromLogin creates or refreshes the user row for the subject
	// and returns the stored record, admin flag included.
	UpsertFromLogin(ctx context.Context, profile LoginProfile) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UpsertFromLogin(ctx context.Context, profile LoginProfile) (*model.User, error) {
	if profile.ID == "" {
		return nil, errors.New("subject id is required")
	}
	user := &model.User{
		ID:              profile.ID,
		Email:           profile.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		ProfileImageURL: profile.ProfileImageURL,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, storageErr(err)
	}
	// Re-read so the caller sees stored flags (IsAdmin is never taken
	// from login claims).
	stored, err := s.userRepo.FindByID(ctx, profile.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	return stored, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return user, nil
}
