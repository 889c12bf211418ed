package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App             AppConfig
	JWT             JWTConfig
	AttendanceStore AttendanceStoreConfig
	Geolocation     GeolocationConfig
	Office          OfficeConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string

	// Timezone is the single organizational timezone used for every
	// calendar-day boundary, independent of any client's local clock.
	Timezone *time.Location
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AttendanceStoreConfig holds the remote attendance store connection settings
type AttendanceStoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GeolocationConfig holds the device-location provider settings
type GeolocationConfig struct {
	BaseURL string
	Timeout time.Duration
}

// OfficeConfig is the reference coordinate used to label clock-in locations
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	timezone, err := time.LoadLocation(getEnv("ORG_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORG_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: timezone,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance store configuration
	storeTimeout, err := time.ParseDuration(getEnv("ATTENDANCE_STORE_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_STORE_TIMEOUT: %w", err)
	}

	config.AttendanceStore = AttendanceStoreConfig{
		BaseURL: getEnv("ATTENDANCE_STORE_URL", ""),
		Timeout: storeTimeout,
	}

	// Geolocation provider configuration
	geoTimeout, err := time.ParseDuration(getEnv("GEO_PROVIDER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEO_PROVIDER_TIMEOUT: %w", err)
	}

	config.Geolocation = GeolocationConfig{
		BaseURL: getEnv("GEO_PROVIDER_URL", ""),
		Timeout: geoTimeout,
	}

	// Office reference coordinate
	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}

	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}

	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "200"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}

	config.Office = OfficeConfig{
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: officeRadius,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.AttendanceStore.BaseURL == "" {
		return fmt.Errorf("ATTENDANCE_STORE_URL is required")
	}
	if c.Geolocation.BaseURL == "" {
		return fmt.Errorf("GEO_PROVIDER_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
