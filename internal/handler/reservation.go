package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/availability"
	"github.com/savorytable/restaurant-reservation/internal/model"
	"github.com/savorytable/restaurant-reservation/internal/notify"
	"github.com/savorytable/restaurant-reservation/internal/queue"
	"github.com/savorytable/restaurant-reservation/internal/repository"
	queue_publisher "github.com/savorytable/restaurant-reservation/internal/service"
)

// Input shapes accepted for reservation requests. The phone format is
// the literal US form the booking form produces.
var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

// ReservationHandler serves the public booking surface: the fixed slot
// list, per-date availability and reservation creation/lookup. The
// notification dispatcher is triggered after a successful create on its
// own goroutine; its outcome is logged and never affects the booking
// response.
type ReservationHandler struct {
	Store      repository.ReservationStore
	Checker    *availability.Checker
	Dispatcher *notify.Dispatcher
}

// NewReservationHandler constructs a ReservationHandler. Store, Checker
// and Dispatcher must be non-nil.
func NewReservationHandler(store repository.ReservationStore, checker *availability.Checker, dispatcher *notify.Dispatcher) *ReservationHandler {
	if store == nil || checker == nil || dispatcher == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: store, Checker: checker, Dispatcher: dispatcher}
}

// GetTimeSlots handles GET /v1/timeslots. It returns the full fixed
// candidate slot set, independent of date.
func (h *ReservationHandler) GetTimeSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"timeSlots": availability.TimeSlots()})
}

// GetAvailability handles GET /v1/availability?date=2006-01-02. It
// returns the subset of slots still bookable on that date, ascending.
func (h *ReservationHandler) GetAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required in YYYY-MM-DD form"})
	}
	slots := h.Checker.AvailableSlots(c.Request().Context(), date)
	return c.JSON(http.StatusOK, echo.Map{
		"date":           date,
		"availableSlots": slots,
	})
}

type createReservationReq struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	SpecialRequests string `json:"specialRequests"`
}

// validate returns a field->message map; an empty map means the request
// is acceptable.
func (r createReservationReq) validate() map[string]string {
	errs := map[string]string{}
	if r.Date == "" {
		errs["date"] = "Date is required"
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		errs["date"] = "Date must be in YYYY-MM-DD form"
	}
	if r.Time == "" {
		errs["time"] = "Time is required"
	} else if !availability.IsSlot(r.Time) {
		errs["time"] = "Time must be one of the offered slots"
	}
	if r.PartySize == 0 {
		errs["partySize"] = "Party size is required"
	} else if r.PartySize < 1 || r.PartySize > 8 {
		errs["partySize"] = "Party size must be between 1 and 8"
	}
	if r.CustomerName == "" {
		errs["customerName"] = "Name is required"
	}
	if r.CustomerEmail == "" {
		errs["customerEmail"] = "Email is required"
	} else if !emailRe.MatchString(r.CustomerEmail) {
		errs["customerEmail"] = "Please enter a valid email"
	}
	if r.CustomerPhone == "" {
		errs["customerPhone"] = "Phone is required"
	} else if !phoneRe.MatchString(r.CustomerPhone) {
		errs["customerPhone"] = "Phone format: (555) 123-4567"
	}
	return errs
}

// Create handles POST /v1/reservations. Availability is re-checked at
// submission time to close the race between slot display and submit; a
// full slot yields 409 and the client must refresh its slot list. The
// check-then-write sequence is not transactional, so two concurrent
// submissions can both pass the check; the fixed cap is a product
// guideline, not a hard invariant.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	ctx := c.Request().Context()
	if !h.Checker.IsAvailable(ctx, req.Date, req.Time) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "This time slot is no longer available. Please select another time.",
		})
	}

	res := model.TableReservation{
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SpecialRequests: req.SpecialRequests,
		Status:          model.StatusConfirmed,
	}
	if err := h.Store.Create(ctx, &res); err != nil {
		log.Printf("reservation: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Could not save your reservation. Please try again.",
		})
	}

	// Confirmation side channel: best effort only. The booking stands
	// whether or not the email or the event publish succeed.
	go h.sendConfirmation(res)

	return c.JSON(http.StatusCreated, echo.Map{"reservation": res})
}

// sendConfirmation runs after the reservation is committed. It gets its
// own timeout context because the request context is gone by the time
// it runs.
func (h *ReservationHandler) sendConfirmation(res model.TableReservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out := h.Dispatcher.Dispatch(ctx, notify.Request{
		CustomerName:    res.CustomerName,
		CustomerEmail:   res.CustomerEmail,
		CustomerPhone:   res.CustomerPhone,
		Date:            res.Date,
		Time:            res.Time,
		PartySize:       res.PartySize,
		SpecialRequests: res.SpecialRequests,
	})
	if out.Success {
		log.Printf("reservation %d: confirmation email sent (id=%s)", res.ID, out.EmailID)
	} else {
		log.Printf("reservation %d: confirmation email failed (status=%d): %s", res.ID, out.Status, out.Err)
	}

	_ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		Date:          res.Date,
		Time:          res.Time,
		PartySize:     res.PartySize,
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetByID handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}
