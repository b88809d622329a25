package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simecdev/simec-api/internal/config"
	"github.com/simecdev/simec-api/internal/email"
	"github.com/simecdev/simec-api/internal/repository/postgres"
	"github.com/simecdev/simec-api/internal/service/lifecycle"
	"github.com/simecdev/simec-api/internal/worker"
	"github.com/simecdev/simec-api/pkg/logger"
	"github.com/simecdev/simec-api/pkg/messaging"
	redisbroker "github.com/simecdev/simec-api/pkg/messaging/redis"
	"github.com/simecdev/simec-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Redis is optional for the sweep: alerts land in the store either
	// way, the broker only fans them out to live listeners.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &log.ZL)
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()
	}

	dispatcher, err := email.NewMailer(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal(err, "failed to initialize mailer")
	}

	m := metrics.NewMetrics("simec")

	engine := lifecycle.NewEngine(
		postgres.NewMaintenanceOrderRepository(db),
		postgres.NewAlertRepository(db),
		postgres.NewContractRepository(db),
		postgres.NewInsuranceRepository(db),
		postgres.NewSubscriptionRepository(db),
		postgres.NewSentNotificationRepository(db),
		dispatcher,
		broker,
		log,
		m,
		nil,
		lifecycle.Config{
			InternalWindowDays: cfg.Sweep.InternalWindowDays,
			BaseURL:            cfg.Sweep.BaseURL,
		},
	)

	sweeper := worker.NewSweepWorker(engine, cfg.Sweep.Interval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sweeper.Start(ctx)

	healthSrv := startHealthServer(cfg.Sweep.HealthPort, db)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down worker...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "health server forced to shutdown")
	}

	log.Info("worker exited properly")
}

func startHealthServer(port int, db interface{ Ping() error }) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"UP"}`)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status":"DOWN"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"UP"}`)
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "health server error: %v\n", err)
		}
	}()
	return srv
}
