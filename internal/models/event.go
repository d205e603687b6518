package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Title       string    `gorm:"not null" json:"title"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	NeedsWaiver bool      `gorm:"not null;default:false" json:"needs_waiver"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
