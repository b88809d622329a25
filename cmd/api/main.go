package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/simecdev/simec-api/internal/config"
	alertHandler "github.com/simecdev/simec-api/internal/handler/alert"
	authHandler "github.com/simecdev/simec-api/internal/handler/auth"
	coverageHandler "github.com/simecdev/simec-api/internal/handler/coverage"
	equipmentHandler "github.com/simecdev/simec-api/internal/handler/equipment"
	healthHandler "github.com/simecdev/simec-api/internal/handler/health"
	maintenanceHandler "github.com/simecdev/simec-api/internal/handler/maintenance"
	subscriptionHandler "github.com/simecdev/simec-api/internal/handler/subscription"
	"github.com/simecdev/simec-api/internal/middleware"
	"github.com/simecdev/simec-api/internal/repository/postgres"
	"github.com/simecdev/simec-api/internal/router"
	alertService "github.com/simecdev/simec-api/internal/service/alert"
	authService "github.com/simecdev/simec-api/internal/service/auth"
	coverageService "github.com/simecdev/simec-api/internal/service/coverage"
	equipmentService "github.com/simecdev/simec-api/internal/service/equipment"
	maintenanceService "github.com/simecdev/simec-api/internal/service/maintenance"
	subscriptionService "github.com/simecdev/simec-api/internal/service/subscription"
	"github.com/simecdev/simec-api/pkg/auth"
	"github.com/simecdev/simec-api/pkg/security"
	"github.com/simecdev/simec-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	equipmentRepo := postgres.NewEquipmentRepository(db)
	orderRepo := postgres.NewMaintenanceOrderRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	contractRepo := postgres.NewContractRepository(db)
	insuranceRepo := postgres.NewInsuranceRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	equipmentSvc := equipmentService.NewService(equipmentRepo)
	maintenanceSvc := maintenanceService.NewService(orderRepo, equipmentRepo)
	alertSvc := alertService.NewService(alertRepo)
	coverageSvc := coverageService.NewService(contractRepo, insuranceRepo)
	subscriptionSvc := subscriptionService.NewService(subscriptionRepo)

	v := validator.New()

	// Handlers
	authH := authHandler.NewHandler(authSvc, v)
	healthH := healthHandler.NewHandler(db)
	alertH := alertHandler.NewHandler(alertSvc)
	maintenanceH := maintenanceHandler.NewHandler(maintenanceSvc, v)
	equipmentH := equipmentHandler.NewHandler(equipmentSvc, v)
	coverageH := coverageHandler.NewHandler(coverageSvc)
	subscriptionH := subscriptionHandler.NewHandler(subscriptionSvc, v)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		healthH,
		[]router.Handler{alertH, maintenanceH, equipmentH, coverageH, subscriptionH},
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
