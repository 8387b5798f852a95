package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Pipeline PipelineConfig
	Tracking TrackingConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// PipelineConfig controls the simulated verification pipelines. StageDelay
// is the time spent in each of the three stages before advancing.
type PipelineConfig struct {
	StageDelay time.Duration
}

// TrackingConfig controls the worker movement simulator. The coordinates
// default to the demo kampung in Kuala Terengganu.
type TrackingConfig struct {
	TickInterval time.Duration
	TripDuration time.Duration
	StartLat     float64
	StartLng     float64
	HomeLat      float64
	HomeLng      float64
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "kampung-demo-secret-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Pipeline: PipelineConfig{
			StageDelay: getEnvAsDuration("PIPELINE_STAGE_DELAY", 1200*time.Millisecond),
		},
		Tracking: TrackingConfig{
			TickInterval: getEnvAsDuration("TRACKING_TICK_INTERVAL", time.Second),
			TripDuration: getEnvAsDuration("TRACKING_TRIP_DURATION", 5*time.Second),
			StartLat:     getEnvAsFloat("TRACKING_START_LAT", 5.3219),
			StartLng:     getEnvAsFloat("TRACKING_START_LNG", 103.1290),
			HomeLat:      getEnvAsFloat("TRACKING_HOME_LAT", 5.3302),
			HomeLng:      getEnvAsFloat("TRACKING_HOME_LNG", 103.1408),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
