package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/notify"
)

// NotificationHandler exposes the confirmation-email pipeline as its own
// network-facing entry point, independent of reservation creation. The
// route is registered for every method so the handler itself can answer
// non-POST invocations with the documented 405 body.
type NotificationHandler struct {
	Dispatcher *notify.Dispatcher
}

func NewNotificationHandler(d *notify.Dispatcher) *NotificationHandler {
	if d == nil {
		panic("nil dispatcher passed to NewNotificationHandler")
	}
	return &NotificationHandler{Dispatcher: d}
}

// SendConfirmation handles /v1/notifications/reservation-email. The
// response is always JSON with a success flag: {success, message,
// emailId} on 200, {success, error} on 400/405/422/500.
func (h *NotificationHandler) SendConfirmation(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusMethodNotAllowed, echo.Map{
			"success": false,
			"error":   "Method not allowed. Use POST.",
		})
	}

	var req notify.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	out := h.Dispatcher.Dispatch(c.Request().Context(), req)
	if !out.Success {
		return c.JSON(out.Status, echo.Map{"success": false, "error": out.Err})
	}
	return c.JSON(out.Status, echo.Map{
		"success": true,
		"message": out.Message,
		"emailId": out.EmailID,
	})
}
