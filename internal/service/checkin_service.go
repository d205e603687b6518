package service

import (
	"context"
	"errors"

	"github.com/arisara-dev/event-checkin/internal/checkin"
	"github.com/arisara-dev/event-checkin/internal/models"
	"github.com/arisara-dev/event-checkin/internal/repository"
	"github.com/arisara-dev/event-checkin/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("caller does not own this event")
	ErrInvalidCode   = errors.New("invalid code")
)

type CheckinService interface {
	CheckIn(ctx context.Context, callerID, eventID uint, rawCode string) (*models.Registration, error)
}

type checkinService struct {
	events    repository.EventRepository
	regs      repository.RegistrationRepository
	resolver  *checkin.Resolver
	publisher *rabbitmq.Publisher
}

func NewCheckinService(events repository.EventRepository, regs repository.RegistrationRepository, publisher *rabbitmq.Publisher) CheckinService {
	return &checkinService{
		events:    events,
		regs:      regs,
		resolver:  checkin.NewResolver(regs),
		publisher: publisher,
	}
}

// CheckIn authorizes the caller against the event, resolves the scanned input
// to a registration, and applies the checked-in transition. Resolution and
// the transition are two store round trips; concurrent scans of the same code
// can both succeed, with the later write owning the timestamp. That matches
// the duplicate-scan semantics: a repeat scan re-stamps rather than failing.
func (s *checkinService) CheckIn(ctx context.Context, callerID, eventID uint, rawCode string) (*models.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.OwnerID != callerID {
		return nil, ErrNotEventOwner
	}

	// May create a placeholder registration on the legacy test-code path.
	reg, err := s.resolver.Resolve(ctx, rawCode, eventID)
	if err != nil {
		return nil, err
	}

	updated, err := s.regs.SetCheckedIn(ctx, reg.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Registration vanished between resolution and the write.
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("registration.checked_in", updated)
	}

	return updated, nil
}
