package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"restaurant-backoffice/internal/config"
	"restaurant-backoffice/internal/database"
	"restaurant-backoffice/internal/idempotency"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/messaging"
	"restaurant-backoffice/internal/repository"
	"restaurant-backoffice/internal/server"
	"restaurant-backoffice/internal/services/dashboard"
	"restaurant-backoffice/internal/services/notification"
	"restaurant-backoffice/internal/services/order"
	"restaurant-backoffice/internal/services/report"
	"restaurant-backoffice/migrations"
)

const (
	modeAPI          = "backoffice-api"
	modeNotification = "notification-subscriber"
)

func main() {
	var (
		mode       = flag.String("mode", modeAPI, "Service mode (backoffice-api, notification-subscriber)")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		port       = flag.Int("port", 0, "HTTP port, overrides app.http_port")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.App.HTTPPort = *port
	}

	log := logger.New(*mode, cfg.App.LogLevel, cfg.App.LogFile)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.App.HTTPPort,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case modeAPI:
		err = runAPI(ctx, cfg, log)
	case modeNotification:
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		err = fmt.Errorf("unknown mode: %s", *mode)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPI serves the back-office HTTP API
func runAPI(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrations.FS); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	orders := repository.NewOrderRepository(db)
	inventory := repository.NewInventoryRepository(db)
	tables := repository.NewTableRepository(db)
	users := repository.NewUserRepository(db)

	var opts []order.Option

	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		opts = append(opts, order.WithNotifier(messaging.NewPublisher(conn, log)))
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		store := idempotency.NewRedisStore(rdb, "orders", cfg.Redis.IdempotencyTTL)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		log.Info("redis_connected", "Connected to Redis", requestID, nil)
		opts = append(opts, order.WithIdempotency(store))
	}

	orderService := order.NewService(repository.NewMenuRepository(db), orders, log, opts...)

	placeholders := report.Placeholders{
		RevenueGrowth:     cfg.Report.RevenueGrowth,
		AvgOrderGrowth:    cfg.Report.AvgOrderGrowth,
		CustomerGrowth:    cfg.Report.CustomerGrowth,
		SatisfactionScore: cfg.Report.SatisfactionScore,
	}
	reportService := report.NewService(orders, inventory, users, placeholders, loc, log)
	dashboardService := dashboard.NewService(orders, inventory, tables, loc, log)

	srv := server.New(cfg.App, db, log,
		order.NewHandler(orderService, log),
		report.NewHandler(reportService, log),
		dashboard.NewHandler(dashboardService, log),
	)
	return srv.Run(ctx)
}

// runNotificationSubscriber prints status updates from the notifications fanout
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber-"+logger.GenerateRequestID()[:8], prefetch)
	return notification.NewSubscriber(consumer, log, os.Stdout).Run(ctx)
}
