package models

// Pet and User are owned by the profile service; the booking listing only
// reads their names to fill the display projections.
type Pet struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;index" json:"owner_id"`
	Name    string `gorm:"size:100" json:"name"`
}

type User struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:100" json:"name"`
	Role string `gorm:"size:20" json:"role"`
}
