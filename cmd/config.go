package cmd

import "time"

// Config carries every externally supplied setting. Values come from the
// environment, loaded in main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NatsURL      string
	StripeAPIKey string

	PlatformFeeRate  float64
	TaxRate          float64
	DeliveryFeeCents int64

	DispatchRadiusKm  float64
	AssignmentTimeout time.Duration
	PaymentTimeout    time.Duration
}
