package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nats-io/nats.go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mealmarket/cmd"
	httpin "mealmarket/internal/adapters/in/http"
	"mealmarket/internal/adapters/out/natsbus"
	"mealmarket/internal/adapters/out/postgres"
	"mealmarket/internal/adapters/out/stripepay"
	"mealmarket/internal/core/domain/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config := getConfigs(logger)

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := postgres.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	natsConn, err := nats.Connect(config.NatsURL)
	if err != nil {
		log.Fatalf("NATS connection failed (%s): %v", config.NatsURL, err)
	}
	defer natsConn.Close()

	root, err := cmd.NewCompositionRoot(
		config,
		gormDB,
		natsbus.NewPublisher(natsConn),
		stripepay.NewGateway(config.StripeAPIKey),
		logger,
	)
	if err != nil {
		log.Fatalf("Composition root wiring failed: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Background jobs failed to start: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config, logger)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "mealmarket"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		NatsURL:      envOrDefault("NATS_URL", nats.DefaultURL),
		StripeAPIKey: os.Getenv("STRIPE_API_KEY"),

		PlatformFeeRate:  envFloat("PLATFORM_FEE_RATE", services.DefaultPlatformFeeRate),
		TaxRate:          envFloat("TAX_RATE", services.DefaultTaxRate),
		DeliveryFeeCents: int64(envInt("DELIVERY_FEE_CENTS", services.DefaultDeliveryFeeCents)),

		DispatchRadiusKm:  envFloat("DISPATCH_RADIUS_KM", 10),
		AssignmentTimeout: time.Duration(envInt("ASSIGNMENT_TIMEOUT_MIN", 5)) * time.Minute,
		PaymentTimeout:    time.Duration(envInt("PAYMENT_TIMEOUT_SEC", 15)) * time.Second,
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// openDatabase connects GORM to Postgres. TranslateError turns driver
// duplicate-key failures into gorm.ErrDuplicatedKey, which the assignment
// repository relies on to report dispatch conflicts.
func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func startWebServer(root *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(root.CreateHTTPHandlers(), config.DispatchRadiusKm)
	server.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
