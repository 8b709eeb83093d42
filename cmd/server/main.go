package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/savorytable/restaurant-reservation/internal/availability"
	"github.com/savorytable/restaurant-reservation/internal/config"
	"github.com/savorytable/restaurant-reservation/internal/database"
	"github.com/savorytable/restaurant-reservation/internal/handler"
	"github.com/savorytable/restaurant-reservation/internal/middleware"
	"github.com/savorytable/restaurant-reservation/internal/notify"
	"github.com/savorytable/restaurant-reservation/internal/queue"
	"github.com/savorytable/restaurant-reservation/internal/repository"
	"github.com/savorytable/restaurant-reservation/internal/router"
	"github.com/savorytable/restaurant-reservation/internal/secret"
)

func main() {
	// Local development keeps its settings in a .env file; in other
	// environments the variables are provided by the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Optional Redis: caching and rate limiting degrade to no-ops when
	// the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories
	reservations := repository.NewReservationRepo(db)
	menu := repository.NewMenuRepo(db)
	reviews := repository.NewReviewRepo(db)
	photos := repository.NewPhotoRepo(db)
	restaurant := repository.NewRestaurantRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Booking core
	checker := availability.NewChecker(reservations)
	dispatcher := notify.NewDispatcher(secret.Env{})

	// Handlers
	reservationH := handler.NewReservationHandler(reservations, checker, dispatcher)
	notificationH := handler.NewNotificationHandler(dispatcher)
	menuH := handler.NewMenuHandler(menu)
	reviewH := handler.NewReviewHandler(reviews)
	restaurantH := handler.NewRestaurantHandler(restaurant, photos)
	staffReservationH := handler.NewStaffReservationHandler(reservations)
	authH := handler.NewAuthHandler(cfg, users, tokens)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterBooking(e, reservationH, notificationH)
	router.RegisterPublic(e, menuH, reviewH, restaurantH, cacheMW)
	router.RegisterAuth(e, authH, staffReservationH, reviewH, restaurantH, cfg.JWTSecret)

	// Background consumer logging confirmed reservations; runs its own
	// reconnect loop for the life of the process.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
