package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
	"gorm.io/gorm"
)

// ListingWithUser is a listing enriched with its owner for display.
type ListingWithUser struct {
	model.Listing
	User *model.User `json:"user"`
}

type CreateListingInput struct {
	Title       string
	CourseCode  string
	Author      *string
	Price       string
	Condition   string
	Description *string
	ImageURL    *string
}

// UpdateListingInput carries a partial edit; nil fields are left untouched.
type UpdateListingInput struct {
	Title       *string
	CourseCode  *string
	Author      *string
	Price       *string
	Condition   *string
	Description *string
	ImageURL    *string
	Status      *string
}

type ListingService interface {
	Create(ctx context.Context, userID string, in CreateListingInput) (*model.Listing, error)
	Get(ctx context.Context, id string) (*ListingWithUser, error)
	ListAll(ctx context.Context) ([]ListingWithUser, error)
	ListMine(ctx context.Context, userID string) ([]model.Listing, error)
	Update(ctx context.Context, id, userID string, in UpdateListingInput) (*model.Listing, error)
	Delete(ctx context.Context, id, userID string) error
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository) ListingService {
	return &listingService{listingRepo: listingRepo, userRepo: userRepo}
}

var priceRe = regexp.MustCompile(`^[0-9]{1,8}(\.[0-9]{1,2})?$`)

// NormalizePrice validates a decimal price string and pads it to exactly
// two fraction digits. The value is carried as a string end to end; no
// float conversion happens anywhere.
func NormalizePrice(p string) (string, error) {
	p = strings.TrimSpace(p)
	if !priceRe.MatchString(p) {
		return "", errors.New("price must be a non-negative amount with at most two decimals")
	}
	whole, frac, found := strings.Cut(p, ".")
	if !found {
		frac = ""
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return whole + "." + frac, nil
}

func (s *listingService) Create(ctx context.Context, userID string, in CreateListingInput) (*model.Listing, error) {
	title := strings.TrimSpace(in.Title)
	courseCode := strings.TrimSpace(in.CourseCode)
	if title == "" || len(title) > 255 {
		return nil, errors.New("invalid title")
	}
	if courseCode == "" || len(courseCode) > 50 {
		return nil, errors.New("invalid course code")
	}
	if !model.ValidCondition(in.Condition) {
		return nil, errors.New("invalid condition")
	}
	price, err := NormalizePrice(in.Price)
	if err != nil {
		return nil, err
	}

	listing := &model.Listing{
		UserID:      userID,
		Title:       title,
		CourseCode:  courseCode,
		Author:      in.Author,
		Price:       price,
		Condition:   in.Condition,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      model.ListingStatusActive,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, storageErr(err)
	}
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*ListingWithUser, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	owner, err := s.findUser(ctx, listing.UserID)
	if err != nil {
		return nil, err
	}
	return &ListingWithUser{Listing: *listing, User: owner}, nil
}

func (s *listingService) ListAll(ctx context.Context) ([]ListingWithUser, error) {
	listings, err := s.listingRepo.ListAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	owners := make(map[string]*model.User)
	out := make([]ListingWithUser, 0, len(listings))
	for i := range listings {
		owner, ok := owners[listings[i].UserID]
		if !ok {
			owner, err = s.findUser(ctx, listings[i].UserID)
			if err != nil {
				return nil, err
			}
			owners[listings[i].UserID] = owner
		}
		out = append(out, ListingWithUser{Listing: listings[i], User: owner})
	}
	return out, nil
}

func (s *listingService) ListMine(ctx context.Context, userID string) ([]model.Listing, error) {
	listings, err := s.listingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return listings, nil
}

func (s *listingService) Update(ctx context.Context, id, userID string, in UpdateListingInput) (*model.Listing, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" || len(t) > 255 {
			return nil, errors.New("invalid title")
		}
		fields["title"] = t
	}
	if in.CourseCode != nil {
		cc := strings.TrimSpace(*in.CourseCode)
		if cc == "" || len(cc) > 50 {
			return nil, errors.New("invalid course code")
		}
		fields["course_code"] = cc
	}
	if in.Author != nil {
		fields["author"] = in.Author
	}
	if in.Price != nil {
		price, err := NormalizePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	if in.Condition != nil {
		if !model.ValidCondition(*in.Condition) {
			return nil, errors.New("invalid condition")
		}
		fields["condition"] = *in.Condition
	}
	if in.Description != nil {
		fields["description"] = in.Description
	}
	if in.ImageURL != nil {
		fields["image_url"] = in.ImageURL
	}
	if in.Status != nil {
		if !model.ValidListingStatus(*in.Status) {
			return nil, errors.New("invalid status")
		}
		fields["status"] = *in.Status
	}

	listing, err := s.listingRepo.Update(ctx, id, userID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, id, userID string) error {
	ok, err := s.listingRepo.Delete(ctx, id, userID)
	if err != nil {
		return storageErr(err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *listingService) findUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return u, nil
}
