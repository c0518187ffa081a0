package service

import (
	"context"
	"sort"
	"time"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories for service tests. A non-nil err makes every
// method fail with it, standing in for a broken store.

type fakeListingRepo struct {
	listings  map[string]model.Listing
	dayCounts []repository.DayCount
	err       error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]model.Listing{}}
}

func (r *fakeListingRepo) Create(_ context.Context, l *model.Listing) error {
	if r.err != nil {
		return r.err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.listings[l.ID] = *l
	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id string) (*model.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	l, ok := r.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := l
	return &cp, nil
}

func (r *fakeListingRepo) ListAll(_ context.Context) ([]model.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeListingRepo) ListByUser(_ context.Context, userID string) ([]model.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Listing
	for _, l := range r.listings {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeListingRepo) Update(_ context.Context, id, userID string, fields map[string]interface{}) (*model.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	l, ok := r.listings[id]
	if !ok || l.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			l.Title = v.(string)
		case "course_code":
			l.CourseCode = v.(string)
		case "author":
			l.Author = v.(*string)
		case "price":
			l.Price = v.(string)
		case "condition":
			l.Condition = v.(string)
		case "description":
			l.Description = v.(*string)
		case "image_url":
			l.ImageURL = v.(*string)
		case "status":
			l.Status = v.(string)
		}
	}
	r.listings[id] = l
	return &l, nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id, userID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	l, ok := r.listings[id]
	if !ok || l.UserID != userID {
		return false, nil
	}
	delete(r.listings, id)
	return true, nil
}

func (r *fakeListingRepo) CountAll(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.listings)), nil
}

func (r *fakeListingRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, l := range r.listings {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeListingRepo) CountRecentByDay(_ context.Context, _ int) ([]repository.DayCount, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.dayCounts, nil
}

func (r *fakeListingRepo) SetDB(_ *gorm.DB) {}

type fakeMessageRepo struct {
	msgs      []model.Message
	dayCounts []repository.DayCount
	clock     time.Time
	err       error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{clock: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	if r.err != nil {
		return r.err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.SentAt.IsZero() {
		r.clock = r.clock.Add(time.Second)
		m.SentAt = r.clock
	}
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *fakeMessageRepo) FindByListingAndParticipant(_ context.Context, listingID, userID string) ([]model.Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Message
	for _, m := range r.msgs {
		if m.ListingID == listingID && (m.SenderID == userID || m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	sortBySentAt(out)
	return out, nil
}

func (r *fakeMessageRepo) FindByParticipant(_ context.Context, userID string) ([]model.Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Message
	for _, m := range r.msgs {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	sortBySentAt(out)
	return out, nil
}

func (r *fakeMessageRepo) ListAll(_ context.Context) ([]model.Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := append([]model.Message(nil), r.msgs...)
	sortBySentAt(out)
	return out, nil
}

func (r *fakeMessageRepo) CountAll(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.msgs)), nil
}

func (r *fakeMessageRepo) CountRecentByDay(_ context.Context, _ int) ([]repository.DayCount, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.dayCounts, nil
}

func (r *fakeMessageRepo) SetDB(_ *gorm.DB) {}

func sortBySentAt(msgs []model.Message) {
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SentAt.Before(msgs[j].SentAt) })
}

type fakeUserRepo struct {
	users     map[string]model.User
	dayCounts []repository.DayCount
	err       error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *model.User) error {
	if r.err != nil {
		return r.err
	}
	if existing, ok := r.users[u.ID]; ok {
		// Preserve flags the upsert never touches.
		u.IsAdmin = existing.IsAdmin
		u.CreatedAt = existing.CreatedAt
	} else if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountRecentByDay(_ context.Context, _ int) ([]repository.DayCount, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.dayCounts, nil
}

func (r *fakeUserRepo) SetDB(_ *gorm.DB) {}

func (r *fakeUserRepo) add(id, first string) {
	f := first
	r.users[id] = model.User{ID: id, FirstName: &f, CreatedAt: time.Now()}
}
