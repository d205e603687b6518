// Package checkin resolves raw scanned or hand-typed QR input to a stored
// registration. Input is untrusted and arrives in several shapes: a bare
// registration code, a URL wrapping the code in a query parameter, a JSON
// payload embedding the registrant's identity, or a reserved demo code. The
// unwrapping stages are best-effort: a stage that cannot interpret the input
// falls through and the text is tried literally, so a wrong unwrap is never
// worse than the original string.
package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/arisara-dev/event-checkin/internal/models"
	"gorm.io/gorm"
)

// legacyTestPrefixes are reserved demo codes. Input starting with one of
// these bypasses normal matching entirely and may create a placeholder
// registration, so the scanner can be demonstrated without a real
// registration pipeline. Resolution on this path mutates state.
var legacyTestPrefixes = []string{
	"EVENT1-REGISTRATION",
	"EVENT1-TICKET",
	"QR-TEST",
}

// Placeholder identity used for registrations synthesized by the legacy
// test-code path.
const (
	placeholderName  = "Test Attendee"
	placeholderEmail = "test@example.com"
	placeholderPhone = "000-000-0000"
)

// RegistrationStore is the persistence surface the resolver needs. The
// repository layer satisfies it.
type RegistrationStore interface {
	FindByCode(ctx context.Context, code string) (*models.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.Registration, error)
	Create(ctx context.Context, reg *models.Registration) error
}

type Resolver struct {
	store RegistrationStore
}

func NewResolver(store RegistrationStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps raw input to a single registration under eventID.
//
// Stages, in priority order:
//  1. legacy test codes: find-or-create a placeholder, no event check
//  2. URL unwrap: take the "data" or "code" query parameter
//  3. JSON unwrap: match the embedded identity against the event's
//     registrations and substitute the matched registration's code
//  4. literal lookup by code
//
// Failures are ErrNoMatch or *EventMismatchError; anything else is a store
// error.
func (r *Resolver) Resolve(ctx context.Context, raw string, eventID uint) (*models.Registration, error) {
	raw = strings.TrimSpace(raw)

	if isLegacyTestCode(raw) {
		return r.findOrCreatePlaceholder(ctx, raw, eventID)
	}

	working := tryUnwrapURL(raw)

	working, err := r.tryUnwrapJSON(ctx, working, eventID)
	if err != nil {
		return nil, err
	}

	reg, err := r.store.FindByCode(ctx, working)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, err
	}
	if reg.EventID != eventID {
		return nil, &EventMismatchError{ParsedEventID: reg.EventID, RequestEventID: eventID}
	}
	return reg, nil
}

func isLegacyTestCode(s string) bool {
	for _, prefix := range legacyTestPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// findOrCreatePlaceholder backs a legacy test code with a registration: the
// existing one whose stored code equals the input verbatim, or a freshly
// persisted placeholder under eventID. Calling twice with the same code
// creates at most one record.
func (r *Resolver) findOrCreatePlaceholder(ctx context.Context, code string, eventID uint) (*models.Registration, error) {
	reg, err := r.store.FindByCode(ctx, code)
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reg = &models.Registration{
		EventID:      eventID,
		Name:         placeholderName,
		Email:        placeholderEmail,
		Phone:        placeholderPhone,
		Participants: 1,
		Code:         code,
	}
	if err := r.store.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// tryUnwrapURL extracts the code from a URL-shaped input. QR generators often
// encode tickets as links with the code in a "data" or "code" parameter. Any
// parse failure keeps the original string.
func tryUnwrapURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if v := q.Get("data"); v != "" {
		return v
	}
	if v := q.Get("code"); v != "" {
		return v
	}
	return raw
}

// qrPayload is the identity shape some ticket QR codes embed instead of a
// bare code.
type qrPayload struct {
	EventID *uint  `json:"eventId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// tryUnwrapJSON interprets JSON-shaped input carrying an event id plus an
// email and/or name. The embedded event id must equal eventID; a mismatch is
// a hard *EventMismatchError, not a fall-through, so the operator learns the
// ticket is for a different event. On an identity match the working value
// becomes the matched registration's stored code. Wrong shape or a parse
// failure returns the input unchanged.
func (r *Resolver) tryUnwrapJSON(ctx context.Context, working string, eventID uint) (string, error) {
	trimmed := strings.TrimSpace(working)
	object := strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
	array := strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
	if !object && !array {
		return working, nil
	}

	var payload qrPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return working, nil
	}
	if payload.EventID == nil || (payload.Email == "" && payload.Name == "") {
		return working, nil
	}

	if *payload.EventID != eventID {
		return "", &EventMismatchError{ParsedEventID: *payload.EventID, RequestEventID: eventID}
	}

	regs, err := r.store.FindByEventID(ctx, eventID)
	if err != nil {
		return "", err
	}

	// Email match wins over name match. Registrations arrive in id order, so
	// a shared email resolves to the earliest-created registration.
	if payload.Email != "" {
		for i := range regs {
			if regs[i].Email == payload.Email {
				return regs[i].Code, nil
			}
		}
	}
	if payload.Name != "" {
		for i := range regs {
			if regs[i].Name == payload.Name {
				return regs[i].Code, nil
			}
		}
	}

	// No identity match: keep the original text so the literal lookup decides.
	return working, nil
}
