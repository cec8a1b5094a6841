package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/config"
	"github.com/iliyamo/kart-track-reservation/internal/database"
	"github.com/iliyamo/kart-track-reservation/internal/handler"
	"github.com/iliyamo/kart-track-reservation/internal/middleware"
	"github.com/iliyamo/kart-track-reservation/internal/queue"
	"github.com/iliyamo/kart-track-reservation/internal/report"
	"github.com/iliyamo/kart-track-reservation/internal/repository"
	"github.com/iliyamo/kart-track-reservation/internal/router"
)

func main() {
	// .env is optional; in containers configuration comes from the real env.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter. A nil client
	// disables both middlewares instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	reservations := repository.NewReservationRepo(db)
	clients := repository.NewClientRepo(db)
	karts := repository.NewKartRepo(db)
	tokens := repository.NewTokenRepo(db)

	orchestrator := booking.NewOrchestrator(reservations, clients, karts)
	aggregator := report.NewAggregator(reservations)

	authH := handler.NewAuthHandler(cfg, clients, tokens)
	bookingH := handler.NewBookingHandler(orchestrator, reservations, clients, cfg.MaxPartySize)
	availabilityH := handler.NewAvailabilityHandler(reservations, orchestrator)
	reportH := handler.NewReportHandler(aggregator)
	kartH := handler.NewKartHandler(karts)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, bookingH, cfg.JWTSecret, rateMW)
	router.RegisterAvailability(e, availabilityH, cacheMW)
	router.RegisterReports(e, reportH, cfg.JWTSecret, cacheMW)
	router.RegisterKarts(e, kartH, cfg.JWTSecret)

	// Confirmation consumer runs for the life of the process and reconnects
	// on broker failures.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
