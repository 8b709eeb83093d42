package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/savorytable/restaurant-reservation/internal/handler"
	"github.com/savorytable/restaurant-reservation/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies. Currently
// it exposes only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the public booking surface and the
// notification entry point. The notification route is bound for every
// method so the handler can answer non-POST invocations with its own
// 405 body.
func RegisterBooking(e *echo.Echo, r *handler.ReservationHandler, n *handler.NotificationHandler) {
	e.GET("/v1/timeslots", r.GetTimeSlots)
	e.GET("/v1/availability", r.GetAvailability)
	e.POST("/v1/reservations", r.Create)
	e.GET("/v1/reservations/:id", r.GetByID)

	e.Any("/v1/notifications/reservation-email", n.SendConfirmation)
}

// RegisterPublic registers the unauthenticated browse endpoints: menu,
// reviews, photos and restaurant info. cache may be nil when Redis is
// unavailable; Echo treats a nil middleware slice as no middleware.
func RegisterPublic(e *echo.Echo, m *handler.MenuHandler, rv *handler.ReviewHandler, rest *handler.RestaurantHandler, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if cache != nil {
		mw = append(mw, cache)
	}
	g := e.Group("/v1", mw...)

	g.GET("/menu", m.List)
	g.GET("/menu/categories", m.Categories)
	g.GET("/menu/dietary-tags", m.DietaryTags)
	g.GET("/menu/:id", m.GetByID)

	g.GET("/reviews", rv.List)
	g.GET("/reviews/summary", rv.Summary)
	g.GET("/reviews/:id", rv.GetByID)

	g.GET("/photos", rest.ListPhotos)
	g.GET("/restaurant", rest.GetInfo)
	g.GET("/restaurant/hours", rest.GetHours)
	g.GET("/restaurant/location", rest.GetLocation)
	g.GET("/restaurant/contact", rest.GetContact)

	// Review submission is public but never cached.
	e.POST("/v1/reviews", rv.Create)
}

// RegisterAuth registers the staff auth endpoints and the protected
// staff surface. Unauthenticated operations live under /v1/auth;
// everything under /v1/staff requires a valid access token with a staff
// role, and account registration additionally requires MANAGER.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sr *handler.StaffReservationHandler, rv *handler.ReviewHandler, rest *handler.RestaurantHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("MANAGER", "STAFF"))
	auth.GET("/me", a.Me)

	staff := e.Group("/v1/staff")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole("MANAGER", "STAFF"))
	staff.GET("/reservations", sr.ListByDate)
	staff.PATCH("/reservations/:id", sr.Update)
	staff.DELETE("/reservations/:id", sr.Delete)
	staff.PATCH("/reviews/:id/verified", rv.SetVerified)
	staff.DELETE("/reviews/:id", rv.Delete)
	staff.PUT("/restaurant", rest.UpdateInfo)

	mgr := e.Group("/v1/staff")
	mgr.Use(middleware.JWTAuth(jwtSecret))
	mgr.Use(middleware.RequireRole("MANAGER"))
	mgr.POST("/users", a.Register)
}
