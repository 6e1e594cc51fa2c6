package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/artik0811/vkr-photostudio/internal/config"
	"github.com/artik0811/vkr-photostudio/internal/domain/admin"
	"github.com/artik0811/vkr-photostudio/internal/domain/booking"
	"github.com/artik0811/vkr-photostudio/internal/domain/client"
	"github.com/artik0811/vkr-photostudio/internal/domain/conversation"
	"github.com/artik0811/vkr-photostudio/internal/domain/photographer"
	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
	"github.com/artik0811/vkr-photostudio/internal/domain/service"
	"github.com/artik0811/vkr-photostudio/internal/domain/session"
	"github.com/artik0811/vkr-photostudio/internal/middleware"
	"github.com/artik0811/vkr-photostudio/internal/pkg/database"
	"github.com/artik0811/vkr-photostudio/internal/pkg/jwt"
	"github.com/artik0811/vkr-photostudio/internal/pkg/response"
	"github.com/artik0811/vkr-photostudio/internal/transport/gateway"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting photostudio bot")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	clientRepo := client.NewRepository(db)
	photographerRepo := photographer.NewRepository(db)
	serviceRepo := service.NewRepository(db)
	hoursRepo := schedule.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Sessions ----------
	var sessions session.Store
	if redis != nil {
		sessions = session.NewRedisStore(redis, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	// ---------- Availability ----------
	availability := schedule.NewAvailability(
		hoursRepo,
		bookingRepo,
		&serviceDurationsAdapter{repo: serviceRepo},
		photographerRepo,
	)

	// ---------- Gateway ----------
	hub := gateway.NewHub()
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Booking ledger ----------
	notifier := conversation.NewNotifier(hub)
	ledger := booking.NewLedger(bookingRepo, notifier, log.Logger)

	// ---------- Conversation engine ----------
	engine := conversation.NewEngine(conversation.Config{
		Sessions:      sessions,
		Clients:       clientRepo,
		Photographers: photographerRepo,
		Services:      serviceRepo,
		Hours:         hoursRepo,
		Availability:  availability,
		Ledger:        ledger,
		Transport:     hub,
		StudioAddress: cfg.StudioAddress,
		Logger:        log.Logger,
	})

	gatewayHandler := gateway.NewHandler(hub, engine, cfg.GatewayToken, cfg.AllowedOrigins)
	adminHandler := admin.NewHandler(photographerRepo, serviceRepo, hoursRepo, jwtService, cfg.AdminKeyHash)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]interface{}{
			"status":  "ok",
			"bridges": hub.ConnectionCount(),
		})
	})

	r.Mount("/gateway", gatewayHandler.Routes())
	r.Mount("/admin", adminHandler.Routes())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// serviceDurationsAdapter bridges the catalog repository to the
// availability engine's duration lookup.
type serviceDurationsAdapter struct {
	repo service.Repository
}

func (a *serviceDurationsAdapter) DurationHours(ctx context.Context, serviceID int64) (int, error) {
	s, err := a.repo.GetByID(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	return s.DurationHours(), nil
}
