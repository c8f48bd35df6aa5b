package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-rotation/internal/config"
	"github.com/iliyamo/office-seat-rotation/internal/database"
	"github.com/iliyamo/office-seat-rotation/internal/handler"
	"github.com/iliyamo/office-seat-rotation/internal/queue"
	"github.com/iliyamo/office-seat-rotation/internal/repository"
	"github.com/iliyamo/office-seat-rotation/internal/router"
	"github.com/iliyamo/office-seat-rotation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real envs win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter/cache degrade

	// Background consumer appends seat events to the audit log. Runs
	// with its own reconnect loop; a missing broker only disables it.
	go func() {
		if err := queue.StartSeatEventConsumer(); err != nil {
			log.Printf("seat event consumer stopped: %v", err)
		}
	}()

	employees := repository.NewEmployeeRepo(db)
	tokens := repository.NewTokenRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)
	alloc := service.NewAllocator(bookings)

	authH := handler.NewAuthHandler(cfg, employees, tokens)
	bookingH := handler.NewBookingHandler(seats, bookings, alloc)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg, rdb, authH, bookingH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
