package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/model"
	"github.com/savorytable/restaurant-reservation/internal/repository"
)

// RestaurantHandler serves the restaurant profile (info, hours,
// location, contact) and the photo gallery. Reads are public; the
// profile update is staff only.
type RestaurantHandler struct {
	Info   *repository.RestaurantRepo
	Photos *repository.PhotoRepo
}

func NewRestaurantHandler(info *repository.RestaurantRepo, photos *repository.PhotoRepo) *RestaurantHandler {
	if info == nil || photos == nil {
		panic("nil repository passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{Info: info, Photos: photos}
}

func (h *RestaurantHandler) loadInfo(c echo.Context) (model.RestaurantInfo, bool) {
	info, err := h.Info.GetInfo(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant profile not configured"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant info"})
		}
		return info, false
	}
	return info, true
}

// GetInfo handles GET /v1/restaurant.
func (h *RestaurantHandler) GetInfo(c echo.Context) error {
	info, ok := h.loadInfo(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, info)
}

// GetHours handles GET /v1/restaurant/hours.
func (h *RestaurantHandler) GetHours(c echo.Context) error {
	info, ok := h.loadInfo(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"hours": info.Hours})
}

// GetLocation handles GET /v1/restaurant/location.
func (h *RestaurantHandler) GetLocation(c echo.Context) error {
	info, ok := h.loadInfo(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{
		"address":     info.Address,
		"coordinates": info.Coordinates,
	})
}

// GetContact handles GET /v1/restaurant/contact.
func (h *RestaurantHandler) GetContact(c echo.Context) error {
	info, ok := h.loadInfo(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{
		"phone":   info.Phone,
		"email":   info.Email,
		"address": info.Address,
	})
}

// UpdateInfo handles PUT /v1/staff/restaurant. Staff only; the full
// profile is replaced.
func (h *RestaurantHandler) UpdateInfo(c echo.Context) error {
	var info model.RestaurantInfo
	if err := c.Bind(&info); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if info.Name == "" || info.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}
	if err := h.Info.UpdateInfo(c.Request().Context(), info); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update restaurant info"})
	}
	return c.JSON(http.StatusOK, info)
}

// ListPhotos handles GET /v1/photos with optional ?category=.
func (h *RestaurantHandler) ListPhotos(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []model.Photo
		err   error
	)
	if cat := c.QueryParam("category"); cat != "" {
		items, err = h.Photos.ListByCategory(ctx, cat)
	} else {
		items, err = h.Photos.ListAll(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load photos"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
