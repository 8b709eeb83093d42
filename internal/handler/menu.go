package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/model"
	"github.com/savorytable/restaurant-reservation/internal/repository"
)

// MenuHandler serves the published menu. All endpoints are public and
// sit behind the Redis response cache.
type MenuHandler struct {
	Menu *repository.MenuRepo
}

func NewMenuHandler(menu *repository.MenuRepo) *MenuHandler {
	if menu == nil {
		panic("nil repository passed to NewMenuHandler")
	}
	return &MenuHandler{Menu: menu}
}

// List handles GET /v1/menu. Optional filters, applied in priority
// order: ?q= text search, ?category=, ?tags= comma-separated dietary
// tags. Without filters the full menu is returned.
func (h *MenuHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []model.MenuItem
		err   error
	)
	switch {
	case c.QueryParam("q") != "":
		items, err = h.Menu.Search(ctx, c.QueryParam("q"))
	case c.QueryParam("category") != "":
		items, err = h.Menu.ListByCategory(ctx, c.QueryParam("category"))
	case c.QueryParam("tags") != "":
		items, err = h.Menu.ListByDietaryTags(ctx, strings.Split(c.QueryParam("tags"), ","))
	default:
		items, err = h.Menu.ListAll(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetByID handles GET /v1/menu/:id.
func (h *MenuHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	item, err := h.Menu.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu item"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Categories handles GET /v1/menu/categories.
func (h *MenuHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": model.MenuCategories})
}

// DietaryTags handles GET /v1/menu/dietary-tags.
func (h *MenuHandler) DietaryTags(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"dietaryTags": model.DietaryTags})
}
