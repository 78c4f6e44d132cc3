package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Pricing defaults applied when no rate contract covers a booking.
	GRSeries            string  // prefix for generated GR numbers
	MinimumWeightKg     float64 // minimum billable weight
	HubCityMarker       string  // substring marking the home station city
	HubLabourRate       float64 // per-nag labour default at the hub
	GeneralLabourRate   float64 // per-nag labour default elsewhere
	ReceivingSlipCharge float64 // one-time slip fee on door deliveries
}

func Load() *Config {
	// .env is a convenience for local development; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:         getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=bilty port=5432 sslmode=disable"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		CORSOrigins:         getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		GRSeries:            getEnv("GR_SERIES", "GR"),
		MinimumWeightKg:     getEnvFloat("MINIMUM_WEIGHT_KG", 50),
		HubCityMarker:       getEnv("HUB_CITY_MARKER", "RAIPUR"),
		HubLabourRate:       getEnvFloat("HUB_LABOUR_RATE", 5),
		GeneralLabourRate:   getEnvFloat("GENERAL_LABOUR_RATE", 10),
		ReceivingSlipCharge: getEnvFloat("RECEIVING_SLIP_CHARGE", 10),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set; it is mandatory")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=bilty port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is the default value; set your own Postgres DSN for production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a number, using default %v", key, v, def)
		return def
	}
	return f
}
