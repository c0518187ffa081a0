package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestCountDistinctConversations(t *testing.T) {
	tests := []struct {
		name string
		msgs []model.Message
		want int64
	}{
		{"empty", nil, 0},
		{
			"both directions collapse",
			[]model.Message{
				{SenderID: "a", ReceiverID: "b", ListingID: "l1"},
				{SenderID: "b", ReceiverID: "a", ListingID: "l1"},
			},
			1,
		},
		{
			"same pair on two listings",
			[]model.Message{
				{SenderID: "a", ReceiverID: "b", ListingID: "l1"},
				{SenderID: "a", ReceiverID: "b", ListingID: "l2"},
			},
			2,
		},
		{
			"two buyers one listing",
			[]model.Message{
				{SenderID: "a", ReceiverID: "b", ListingID: "l1"},
				{SenderID: "c", ReceiverID: "b", ListingID: "l1"},
			},
			2,
		},
		{
			"repeat traffic is one thread",
			[]model.Message{
				{SenderID: "a", ReceiverID: "b", ListingID: "l1"},
				{SenderID: "a", ReceiverID: "b", ListingID: "l1"},
				{SenderID: "b", ReceiverID: "a", ListingID: "l1"},
			},
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, countDistinctConversations(tt.msgs))
		})
	}
}

func TestComputeStats(t *testing.T) {
	users := newFakeUserRepo()
	listings := newFakeListingRepo()
	msgs := newFakeMessageRepo()
	ctx := context.Background()

	users.add("seller", "Sam")
	users.add("ada", "Ada")
	users.add("carl", "Carl")

	mkListing := func(id, status string) {
		require.NoError(t, listings.Create(ctx, &model.Listing{
			ID: id, UserID: "seller", Title: "t", CourseCode: "c",
			Price: "10.00", Condition: model.ConditionGood, Status: status,
		}))
	}
	mkListing("l1", model.ListingStatusActive)
	mkListing("l2", model.ListingStatusActive)
	mkListing("l3", model.ListingStatusSold)

	send := func(from, to, listing string) {
		require.NoError(t, msgs.Create(ctx, &model.Message{SenderID: from, ReceiverID: to, ListingID: listing, Content: "x"}))
	}
	send("ada", "seller", "l1")
	send("seller", "ada", "l1")
	send("carl", "seller", "l1")
	send("ada", "seller", "l2")

	users.dayCounts = []repository.DayCount{{Date: "2025-09-01", Count: 2}, {Date: "2025-09-03", Count: 1}}
	listings.dayCounts = []repository.DayCount{{Date: "2025-09-02", Count: 3}}

	svc := NewAdminService(users, listings, msgs)
	stats, err := svc.ComputeStats(ctx)
	require.NoError(t, err)

	require.Equal(t, int64(3), stats.TotalUsers)
	require.Equal(t, int64(3), stats.TotalListings)
	require.Equal(t, int64(2), stats.ActiveListings)
	require.Equal(t, int64(1), stats.SoldListings)
	require.Equal(t, int64(4), stats.TotalMessages)
	// (l1,ada) and (l1,carl) are distinct threads; (l2,ada) a third.
	require.Equal(t, int64(3), stats.TotalConversations)

	require.Equal(t, users.dayCounts, stats.RecentSignups)
	require.Equal(t, listings.dayCounts, stats.RecentListings)
	for _, dc := range append(stats.RecentSignups, stats.RecentListings...) {
		require.NotZero(t, dc.Count)
	}
}

func TestComputeStatsStorageError(t *testing.T) {
	users := newFakeUserRepo()
	users.err = errors.New("timeout")

	svc := NewAdminService(users, newFakeListingRepo(), newFakeMessageRepo())
	_, err := svc.ComputeStats(context.Background())
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
