package dto

import "github.com/arisara-dev/event-checkin/internal/models"

type CreateEventRequest struct {
	Title       string `json:"title"`
	Capacity    int    `json:"capacity"`
	NeedsWaiver bool   `json:"needs_waiver"`
}

type CreateRegistrationRequest struct {
	Name                   string               `json:"name"`
	Email                  string               `json:"email"`
	Phone                  string               `json:"phone"`
	Participants           int                  `json:"participants"`
	AdditionalParticipants []models.Participant `json:"additional_participants"`
	WaiverSigned           bool                 `json:"waiver_signed"`
}

// CheckInRequest is the scanner's submission. Field names follow the wire
// contract the scanner client already speaks.
type CheckInRequest struct {
	QRCode  string `json:"qrCode"`
	EventID uint   `json:"eventId"`
}
