package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arisara-dev/event-checkin/internal/dto"
	"github.com/arisara-dev/event-checkin/internal/models"
	"github.com/arisara-dev/event-checkin/internal/repository"
	"github.com/arisara-dev/event-checkin/pkg/rabbitmq"
	"github.com/google/uuid"
)

type RegistrationService interface {
	Register(ctx context.Context, eventID uint, req dto.CreateRegistrationRequest) (*models.Registration, error)
	ListForEvent(ctx context.Context, callerID, eventID uint) ([]models.Registration, error)
}

type registrationService struct {
	events    repository.EventRepository
	regs      repository.RegistrationRepository
	publisher *rabbitmq.Publisher
}

func NewRegistrationService(events repository.EventRepository, regs repository.RegistrationRepository, publisher *rabbitmq.Publisher) RegistrationService {
	return &registrationService{events: events, regs: regs, publisher: publisher}
}

// Register creates a registration under the event with a freshly minted code.
// The code is the ticket: it is what the attendee's QR encodes and it never
// changes after creation.
func (s *registrationService) Register(ctx context.Context, eventID uint, req dto.CreateRegistrationRequest) (*models.Registration, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Participants <= 0 {
		req.Participants = 1
	}

	extra := "[]"
	if len(req.AdditionalParticipants) > 0 {
		b, err := json.Marshal(req.AdditionalParticipants)
		if err != nil {
			return nil, fmt.Errorf("encode additional participants: %w", err)
		}
		extra = string(b)
	}

	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, ErrEventNotFound
	}

	reg := &models.Registration{
		EventID:                eventID,
		Name:                   req.Name,
		Email:                  req.Email,
		Phone:                  strings.TrimSpace(req.Phone),
		Participants:           req.Participants,
		AdditionalParticipants: extra,
		WaiverSigned:           req.WaiverSigned,
		Code:                   uuid.NewString(),
	}
	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("registration.created", reg)
	}

	return reg, nil
}

// ListForEvent returns the event's registrations to its owner, in id order.
func (s *registrationService) ListForEvent(ctx context.Context, callerID, eventID uint) ([]models.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.OwnerID != callerID {
		return nil, ErrNotEventOwner
	}
	return s.regs.FindByEventID(ctx, eventID)
}
