package service

import (
	"context"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
)

// statsWindowDays is the trailing window for the recent-activity series,
// inclusive of today.
const statsWindowDays = 7

// Stats is the marketplace-wide snapshot served to administrators. Days
// with zero events are absent from the recent series, not zero-filled.
type Stats struct {
	TotalUsers         int64                 `json:"totalUsers"`
	TotalListings      int64                 `json:"totalListings"`
	SoldListings       int64                 `json:"soldListings"`
	ActiveListings     int64                 `json:"activeListings"`
	TotalConversations int64                 `json:"totalConversations"`
	TotalMessages      int64                 `json:"totalMessages"`
	RecentSignups      []repository.DayCount `json:"recentSignups"`
	RecentListings     []repository.DayCount `json:"recentListings"`
}

type AdminService interface {
	ComputeStats(ctx context.Context) (*Stats, error)
}

type adminService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	msgRepo     repository.MessageRepository
}

func NewAdminService(userRepo repository.UserRepository, listingRepo repository.ListingRepository, msgRepo repository.MessageRepository) AdminService {
	return &adminService{userRepo: userRepo, listingRepo: listingRepo, msgRepo: msgRepo}
}

func (s *adminService) ComputeStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, storageErr(err)
	}
	if stats.TotalListings, err = s.listingRepo.CountAll(ctx); err != nil {
		return nil, storageErr(err)
	}
	if stats.SoldListings, err = s.listingRepo.CountByStatus(ctx, model.ListingStatusSold); err != nil {
		return nil, storageErr(err)
	}
	if stats.ActiveListings, err = s.listingRepo.CountByStatus(ctx, model.ListingStatusActive); err != nil {
		return nil, storageErr(err)
	}
	if stats.TotalMessages, err = s.msgRepo.CountAll(ctx); err != nil {
		return nil, storageErr(err)
	}

	msgs, err := s.msgRepo.ListAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	stats.TotalConversations = countDistinctConversations(msgs)

	if stats.RecentSignups, err = s.userRepo.CountRecentByDay(ctx, statsWindowDays); err != nil {
		return nil, storageErr(err)
	}
	if stats.RecentListings, err = s.listingRepo.CountRecentByDay(ctx, statsWindowDays); err != nil {
		return nil, storageErr(err)
	}
	return stats, nil
}

// countDistinctConversations collapses the flat message log into distinct
// threads without a conversation table. A thread is the unordered pair of
// participants plus the listing, so the lexicographically smaller of the
// two ids stands in for the pair: A→B and B→A on the same listing land on
// the same key no matter who spoke first.
func countDistinctConversations(msgs []model.Message) int64 {
	type convKey struct {
		listingID   string
		participant string
	}
	seen := make(map[convKey]struct{}, len(msgs))
	for _, m := range msgs {
		lo := m.SenderID
		if m.ReceiverID < lo {
			lo = m.ReceiverID
		}
		seen[convKey{listingID: m.ListingID, participant: lo}] = struct{}{}
	}
	return int64(len(seen))
}
