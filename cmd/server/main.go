package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/9santoshki/saloon-reservation/internal/config"
	"github.com/9santoshki/saloon-reservation/internal/database"
	"github.com/9santoshki/saloon-reservation/internal/handler"
	"github.com/9santoshki/saloon-reservation/internal/middleware"
	"github.com/9santoshki/saloon-reservation/internal/queue"
	"github.com/9santoshki/saloon-reservation/internal/repository"
	"github.com/9santoshki/saloon-reservation/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	rl := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	// Repositories share the one connection pool opened above.
	stores := repository.NewStoreRepo(db)
	services := repository.NewServiceRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	reservations := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	storeHandler := handler.NewStoreHandler(stores)
	serviceHandler := handler.NewServiceHandler(services)
	reservationHandler := handler.NewReservationHandler(reservations, stores, services)
	assistantHandler := handler.NewAssistantHandler(cfg.AgentURL, cfg.AgentTimeout)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rl)
	router.RegisterPublic(e, storeHandler, config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, storeHandler, authHandler, cfg.JWTSecret)
	router.RegisterStoreOwner(e, storeHandler, serviceHandler, cfg.JWTSecret)
	router.RegisterServices(e, serviceHandler, cfg.JWTSecret)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)
	router.RegisterAssistant(e, assistantHandler, rl)

	// Consume reservation.confirmed events in the background; the loop
	// reconnects on its own and never takes the API down.
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
