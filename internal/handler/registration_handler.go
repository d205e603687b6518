package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arisara-dev/event-checkin/internal/dto"
	"github.com/arisara-dev/event-checkin/internal/middleware"
	"github.com/arisara-dev/event-checkin/internal/service"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/:id/registrations", h.Register)
	g.GET("/:id/registrations", h.ListRegistrations, auth)
}

// Register creates a registration for an event. Public: attendees register
// themselves and receive their code in the response.
func (h *RegistrationHandler) Register(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reg, err := h.svc.Register(c.Request().Context(), uint(eventID), req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

// ListRegistrations returns an event's registrations to its owner.
func (h *RegistrationHandler) ListRegistrations(c echo.Context) error {
	callerID, ok := middleware.OrganizerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	regs, err := h.svc.ListForEvent(c.Request().Context(), callerID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotEventOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := make([]dto.RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = dto.ToRegistrationResponse(&r)
	}

	return c.JSON(http.StatusOK, resp)
}
