package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID string `gorm:"size:36;index;not null" json:"client_id"`
	SitterID string `gorm:"size:36;index;not null" json:"sitter_id"`
	PetID    string `gorm:"size:36;not null" json:"pet_id"`

	// projections supplied by the listing query, never written by the engine
	PetName    string `gorm:"->;-:migration" json:"pet_name,omitempty"`
	SitterName string `gorm:"->;-:migration" json:"sitter_name,omitempty"`
	ClientName string `gorm:"->;-:migration" json:"client_name,omitempty"`

	StartDateTime time.Time `gorm:"not null" json:"start_date_time"`
	EndDateTime   time.Time `gorm:"not null" json:"end_date_time"`

	Notes  string `gorm:"size:1000" json:"notes"`
	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	Version int64 `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
