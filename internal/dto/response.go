package dto

import (
	"time"

	"github.com/arisara-dev/event-checkin/internal/models"
)

type EventResponse struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"owner_id"`
	Title       string    `json:"title"`
	Capacity    int       `json:"capacity"`
	NeedsWaiver bool      `json:"needs_waiver"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegistrationResponse is the full registration record as the scanner client
// renders it. Field names follow the client's wire contract, including the
// JSON-string participants list and the ISO-8601 check-in stamp.
type RegistrationResponse struct {
	ID                     uint       `json:"id"`
	EventID                uint       `json:"eventId"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	Participants           int        `json:"participants"`
	AdditionalParticipants string     `json:"additionalParticipants"`
	WaiverSigned           bool       `json:"waiverSigned"`
	CheckedIn              bool       `json:"checkedIn"`
	CheckedInAt            *time.Time `json:"checkedInAt"`
	QRCode                 string     `json:"qrCode"`
}

// CheckInErrorResponse carries a machine-distinguishable reason plus debug
// detail for failed check-in attempts.
type CheckInErrorResponse struct {
	Error string         `json:"error"`
	Debug map[string]any `json:"debug,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Title:       e.Title,
		Capacity:    e.Capacity,
		NeedsWaiver: e.NeedsWaiver,
		CreatedAt:   e.CreatedAt,
	}
}

func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:                     r.ID,
		EventID:                r.EventID,
		Name:                   r.Name,
		Email:                  r.Email,
		Phone:                  r.Phone,
		Participants:           r.Participants,
		AdditionalParticipants: r.AdditionalParticipants,
		WaiverSigned:           r.WaiverSigned,
		CheckedIn:              r.CheckedIn,
		CheckedInAt:            r.CheckedInAt,
		QRCode:                 r.Code,
	}
}
