package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/availability"
	"github.com/savorytable/restaurant-reservation/internal/model"
	"github.com/savorytable/restaurant-reservation/internal/repository"
)

// StaffReservationHandler serves the authenticated staff surface:
// listing a day's bookings, editing them (status changes included) and
// deleting them. JWT and role checks happen in middleware.
type StaffReservationHandler struct {
	Store repository.ReservationStore
}

func NewStaffReservationHandler(store repository.ReservationStore) *StaffReservationHandler {
	if store == nil {
		panic("nil store passed to NewStaffReservationHandler")
	}
	return &StaffReservationHandler{Store: store}
}

// ListByDate handles GET /v1/staff/reservations?date=2006-01-02 and
// returns the day's reservations ordered by slot.
func (h *StaffReservationHandler) ListByDate(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required in YYYY-MM-DD form"})
	}
	items, err := h.Store.ListByDate(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type updateReservationReq struct {
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	PartySize       *int    `json:"partySize"`
	CustomerName    *string `json:"customerName"`
	CustomerEmail   *string `json:"customerEmail"`
	CustomerPhone   *string `json:"customerPhone"`
	SpecialRequests *string `json:"specialRequests"`
	Status          *string `json:"status"`
}

// Update handles PATCH /v1/staff/reservations/:id. Only the provided
// fields change; the usual use is flipping status to cancelled, which
// releases the slot for new bookings.
func (h *StaffReservationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	res, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}

	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be in YYYY-MM-DD form"})
		}
		res.Date = *req.Date
	}
	if req.Time != nil {
		if !availability.IsSlot(*req.Time) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be one of the offered slots"})
		}
		res.Time = *req.Time
	}
	if req.PartySize != nil {
		if *req.PartySize < 1 || *req.PartySize > 8 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "party size must be between 1 and 8"})
		}
		res.PartySize = *req.PartySize
	}
	if req.CustomerName != nil {
		res.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		if !emailRe.MatchString(*req.CustomerEmail) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
		}
		res.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		if !phoneRe.MatchString(*req.CustomerPhone) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone format: (555) 123-4567"})
		}
		res.CustomerPhone = *req.CustomerPhone
	}
	if req.SpecialRequests != nil {
		res.SpecialRequests = *req.SpecialRequests
	}
	if req.Status != nil {
		if *req.Status != model.StatusConfirmed && *req.Status != model.StatusCancelled {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be confirmed or cancelled"})
		}
		res.Status = *req.Status
	}

	if err := h.Store.Update(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Delete handles DELETE /v1/staff/reservations/:id.
func (h *StaffReservationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}
