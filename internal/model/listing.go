package model

import "time"

const (
	ListingStatusActive = "Active"
	ListingStatusSold   = "Sold"
)

const (
	ConditionNew     = "New"
	ConditionLikeNew = "Like New"
	ConditionGood    = "Good"
	ConditionUsed    = "Used"
)

// Listing is a textbook offered for sale. Price is carried as a decimal
// string so the currency value never round-trips through a float.
type Listing struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"column:user_id;size:128;not null;index" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CourseCode  string    `gorm:"column:course_code;size:50;not null" json:"courseCode"`
	Author      *string   `gorm:"size:255" json:"author"`
	Price       string    `gorm:"type:decimal(10,2);not null" json:"price"`
	Condition   string    `gorm:"size:20;not null" json:"condition"`
	Description *string   `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"column:image_url;size:500" json:"imageUrl"`
	Status      string    `gorm:"size:20;not null;default:Active" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Listing) TableName() string {
	return "listings"
}

func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionUsed:
		return true
	}
	return false
}

func ValidListingStatus(s string) bool {
	return s == ListingStatusActive || s == ListingStatusSold
}
