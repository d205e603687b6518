package handler

import (
	"errors"
	"net/http"

	"github.com/arisara-dev/event-checkin/internal/checkin"
	"github.com/arisara-dev/event-checkin/internal/dto"
	"github.com/arisara-dev/event-checkin/internal/middleware"
	"github.com/arisara-dev/event-checkin/internal/service"
	"github.com/labstack/echo/v4"
)

type CheckinHandler struct {
	svc service.CheckinService
}

func NewCheckinHandler(svc service.CheckinService) *CheckinHandler {
	return &CheckinHandler{svc: svc}
}

func (h *CheckinHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/checkin", h.CheckIn, auth)
}

// CheckIn handles a scan: authorize the organizer against the event, resolve
// the scanned string to a registration, mark it checked in, and return the
// full updated record. Interpretation failures come back as 400 with a
// machine-readable reason and a debug payload carrying the attempted code.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	callerID, ok := middleware.OrganizerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req dto.CheckInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.CheckInErrorResponse{Error: "invalid request body"})
	}
	if req.QRCode == "" || req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, dto.CheckInErrorResponse{Error: "qrCode and eventId are required"})
	}

	reg, err := h.svc.CheckIn(c.Request().Context(), callerID, req.EventID, req.QRCode)
	if err != nil {
		var mismatch *checkin.EventMismatchError
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotEventOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.As(err, &mismatch):
			return c.JSON(http.StatusBadRequest, dto.CheckInErrorResponse{
				Error: "registration belongs to a different event",
				Debug: map[string]any{
					"qrCode":         req.QRCode,
					"parsedEventId":  mismatch.ParsedEventID,
					"requestEventId": mismatch.RequestEventID,
				},
			})
		case errors.Is(err, checkin.ErrNoMatch):
			return c.JSON(http.StatusBadRequest, dto.CheckInErrorResponse{
				Error: "no matching registration",
				Debug: map[string]any{"qrCode": req.QRCode},
			})
		case errors.Is(err, service.ErrInvalidCode):
			return c.JSON(http.StatusBadRequest, dto.CheckInErrorResponse{
				Error: "invalid code",
				Debug: map[string]any{"qrCode": req.QRCode},
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}
