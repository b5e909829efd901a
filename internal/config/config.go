package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	AdminUser     string
	AdminPassword string

	// Analysis settings
	AnalysisSeed     int64
	DefaultCenterLat float64
	DefaultCenterLng float64
}

// Load reads configuration from the environment with sane defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/crimes/crimes.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	adminUser := os.Getenv("ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "change-me"
	}

	return &Config{
		Port:             port,
		DBPath:           dbPath,
		JWTSecret:        jwtSecret,
		AdminUser:        adminUser,
		AdminPassword:    adminPassword,
		AnalysisSeed:     envInt64("ANALYSIS_SEED", 42),
		DefaultCenterLat: envFloat("DEFAULT_CENTER_LAT", 13.0827), // Chennai
		DefaultCenterLng: envFloat("DEFAULT_CENTER_LNG", 80.2707),
	}
}

func envInt64(key string, fallback int64) int64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}
