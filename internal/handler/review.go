package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/model"
	"github.com/savorytable/restaurant-reservation/internal/repository"
)

// ReviewHandler serves customer reviews: public listing and submission,
// plus the staff-only verified flag and deletion.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	if reviews == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews}
}

// List handles GET /v1/reviews. Default order is newest first;
// ?sort=rating&order=asc|desc switches to rating order.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []model.Review
		err   error
	)
	if strings.EqualFold(c.QueryParam("sort"), "rating") {
		ascending := strings.EqualFold(c.QueryParam("order"), "asc")
		items, err = h.Reviews.ListByRating(ctx, ascending)
	} else {
		items, err = h.Reviews.ListNewestFirst(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Summary handles GET /v1/reviews/summary: average rating rounded to
// one decimal plus the 1..5 star distribution.
func (h *ReviewHandler) Summary(c echo.Context) error {
	sum, err := h.Reviews.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load review summary"})
	}
	return c.JSON(http.StatusOK, sum)
}

// GetByID handles GET /v1/reviews/:id.
func (h *ReviewHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	rv, err := h.Reviews.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rv})
}

type createReviewReq struct {
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// Create handles POST /v1/reviews. The server sets the review date to
// today and verified to false; staff verify reviews later.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customerName is required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	rv := model.Review{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Rating:       req.Rating,
		Comment:      req.Comment,
		Date:         time.Now().UTC().Format("2006-01-02"),
	}
	if err := h.Reviews.Create(c.Request().Context(), &rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save review"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rv})
}

// SetVerified handles PATCH /v1/staff/reviews/:id/verified with body
// {"verified": bool}. Staff only.
func (h *ReviewHandler) SetVerified(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var body struct {
		Verified bool `json:"verified"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Reviews.SetVerified(c.Request().Context(), id, body.Verified); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "verified": body.Verified})
}

// Delete handles DELETE /v1/staff/reviews/:id. Staff only.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	if err := h.Reviews.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.NoContent(http.StatusNoContent)
}
