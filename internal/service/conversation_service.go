package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/repository"
	"gorm.io/gorm"
)

// SeedMessageContent is the synthetic first message that opens a
// conversation between a buyer and a listing owner.
const SeedMessageContent = "Hi, I'm interested in this textbook!"

// MessageWithUsers is a stored message enriched with the sender and
// receiver records for display.
type MessageWithUsers struct {
	model.Message
	Sender   *model.User `json:"sender"`
	Receiver *model.User `json:"receiver"`
}

// ConversationView is one derived thread as seen by a viewer: the listing
// (with its owner attached), the other participant, and the full message
// history in chronological order. Conversations are never persisted; every
// view is rebuilt from the message log on each call.
type ConversationView struct {
	Listing   ListingWithUser    `json:"listing"`
	OtherUser *model.User        `json:"otherUser"`
	Messages  []MessageWithUsers `json:"messages"`
}

// ConversationKey identifies a thread: one listing, one counterpart. Two
// buyers messaging the same listing give its owner two distinct keys, never
// one merged thread.
type ConversationKey struct {
	ListingID   string
	OtherUserID string
}

func (k ConversationKey) String() string {
	return k.ListingID + ":" + k.OtherUserID
}

type ConversationService interface {
	// SendMessage stores a message from senderID on the listing's thread.
	// A non-owner always writes to the listing owner. The owner writes to
	// recipientID when given (the recipient must already have messaged
	// this listing), otherwise to the first prior non-owner sender; with
	// no prior counterpart the call fails with ErrNoConversation.
	SendMessage(ctx context.Context, senderID, listingID, content, recipientID string) (*model.Message, error)
	// StartConversation seeds a thread between initiatorID and the
	// listing owner. Idempotent: an existing thread means no write.
	StartConversation(ctx context.Context, initiatorID, listingID string) error
	// ListConversations derives every thread touching viewerID, one entry
	// per distinct (listing, counterpart) pair.
	ListConversations(ctx context.Context, viewerID string) (map[ConversationKey]ConversationView, error)
}

type conversationService struct {
	msgRepo     repository.MessageRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewConversationService(msgRepo repository.MessageRepository, listingRepo repository.ListingRepository, userRepo repository.UserRepository) ConversationService {
	return &conversationService{msgRepo: msgRepo, listingRepo: listingRepo, userRepo: userRepo}
}

func (s *conversationService) SendMessage(ctx context.Context, senderID, listingID, content, recipientID string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content is required")
	}
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}

	receiverID := listing.UserID
	if senderID == listing.UserID {
		history, err := s.msgRepo.FindByListingAndParticipant(ctx, listingID, senderID)
		if err != nil {
			return nil, storageErr(err)
		}
		receiverID = resolveCounterpart(history, senderID, recipientID)
		if receiverID == "" {
			return nil, ErrNoConversation
		}
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		ListingID:  listingID,
		Content:    content,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, storageErr(err)
	}
	return msg, nil
}

// resolveCounterpart picks the receiver for an owner's reply. With an
// explicit recipient the thread must already exist, i.e. the recipient has
// sent at least one message on this listing. Without one, the first prior
// non-owner sender wins, which is ambiguous once two buyers share a
// listing; callers with more than one open thread should pass the
// recipient explicitly.
func resolveCounterpart(history []model.Message, ownerID, recipientID string) string {
	for _, m := range history {
		if m.SenderID == ownerID {
			continue
		}
		if recipientID == "" || m.SenderID == recipientID {
			return m.SenderID
		}
	}
	return ""
}

func (s *conversationService) StartConversation(ctx context.Context, initiatorID, listingID string) error {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageErr(err)
	}
	if initiatorID == listing.UserID {
		return ErrSelfMessage
	}

	existing, err := s.msgRepo.FindByListingAndParticipant(ctx, listingID, initiatorID)
	if err != nil {
		return storageErr(err)
	}
	if len(existing) > 0 {
		return nil
	}

	// Check-then-insert: two near-simultaneous calls may both seed.
	// Exactly-once seeding is the store's job, not handled here.
	msg := &model.Message{
		SenderID:   initiatorID,
		ReceiverID: listing.UserID,
		ListingID:  listingID,
		Content:    SeedMessageContent,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *conversationService) ListConversations(ctx context.Context, viewerID string) (map[ConversationKey]ConversationView, error) {
	msgs, err := s.msgRepo.FindByParticipant(ctx, viewerID)
	if err != nil {
		return nil, storageErr(err)
	}

	// Partition by (listing, counterpart), keeping the chronological order
	// the repository returns. The counterpart of a message is whichever
	// participant is not the viewer.
	threads := make(map[ConversationKey][]model.Message)
	for _, m := range msgs {
		other := m.SenderID
		if other == viewerID {
			other = m.ReceiverID
		}
		key := ConversationKey{ListingID: m.ListingID, OtherUserID: other}
		threads[key] = append(threads[key], m)
	}

	users := make(map[string]*model.User)
	lookupUser := func(id string) (*model.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		u, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				users[id] = nil
				return nil, nil
			}
			return nil, storageErr(err)
		}
		users[id] = u
		return u, nil
	}

	listings := make(map[string]*model.Listing)
	views := make(map[ConversationKey]ConversationView, len(threads))
	for key, thread := range threads {
		listing, ok := listings[key.ListingID]
		if !ok {
			listing, err = s.listingRepo.FindByID(ctx, key.ListingID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Listing deleted while its messages linger; skip
					// the thread rather than failing the whole call.
					listings[key.ListingID] = nil
					continue
				}
				return nil, storageErr(err)
			}
			listings[key.ListingID] = listing
		}
		if listing == nil {
			continue
		}

		owner, err := lookupUser(listing.UserID)
		if err != nil {
			return nil, err
		}
		counterpart, err := lookupUser(key.OtherUserID)
		if err != nil {
			return nil, err
		}

		enriched := make([]MessageWithUsers, 0, len(thread))
		for _, m := range thread {
			sender, err := lookupUser(m.SenderID)
			if err != nil {
				return nil, err
			}
			receiver, err := lookupUser(m.ReceiverID)
			if err != nil {
				return nil, err
			}
			enriched = append(enriched, MessageWithUsers{Message: m, Sender: sender, Receiver: receiver})
		}

		views[key] = ConversationView{
			Listing:   ListingWithUser{Listing: *listing, User: owner},
			OtherUser: counterpart,
			Messages:  enriched,
		}
	}
	return views, nil
}
