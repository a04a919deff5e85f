package models

import "time"

// Review is the client's rating of a completed booking. One per booking.
type Review struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	BookingID string `gorm:"size:36;uniqueIndex;not null" json:"booking_id"`
	SitterID  string `gorm:"size:36;index;not null" json:"sitter_id"`
	ClientID  string `gorm:"size:36;not null" json:"client_id"`

	Rating  int    `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"size:1000;not null" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
