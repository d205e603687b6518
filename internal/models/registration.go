package models

import "time"

// Participant is one entry in a registration's additional-participants list.
// The list is stored JSON-encoded in Registration.AdditionalParticipants.
type Participant struct {
	Name         string `json:"name"`
	Minor        bool   `json:"minor"`
	WaiverSigned bool   `json:"waiverSigned"`
}

type Registration struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	EventID                uint       `gorm:"not null;index" json:"event_id"`
	Name                   string     `gorm:"not null" json:"name"`
	Email                  string     `gorm:"not null" json:"email"`
	Phone                  string     `json:"phone"`
	Participants           int        `gorm:"not null;default:1" json:"participants"`
	AdditionalParticipants string     `json:"additional_participants"`
	WaiverSigned           bool       `gorm:"not null;default:false" json:"waiver_signed"`
	CheckedIn              bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt            *time.Time `json:"checked_in_at,omitempty"`
	Code                   string     `gorm:"uniqueIndex;not null" json:"code"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
