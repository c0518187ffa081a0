package model

import "time"

// Message is one entry in the flat message log. Conversations are derived
// from this table at read time; there is no persisted conversation entity.
type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string    `gorm:"column:sender_id;size:128;not null;index" json:"senderId"`
	ReceiverID string    `gorm:"column:receiver_id;size:128;not null;index" json:"receiverId"`
	ListingID  string    `gorm:"column:listing_id;size:36;not null;index" json:"listingId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	SentAt     time.Time `gorm:"column:sent_at;autoCreateTime" json:"sentAt"`
}

func (Message) TableName() string {
	return "messages"
}
