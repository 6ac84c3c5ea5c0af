package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Mailer                    MailerConfig
	Stripe                    StripeConfig
	Salon                     SalonConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// MailerConfig holds SMTP settings for appointment emails.
type MailerConfig struct {
	Host string
	Port string
	From string
}

// StripeConfig holds the payment gateway credentials.
type StripeConfig struct {
	SecretKey string
}

// SalonConfig holds the booking policy: timezone and business hours. Slot
// granularity and the default service duration are fixed in the scheduling
// package.
type SalonConfig struct {
	Timezone    string
	Location    *time.Location
	OpenMinute  int
	CloseMinute int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "salon"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	mailerConfig := MailerConfig{
		Host: getEnv("SMTP_HOST", "localhost"),
		Port: getEnv("SMTP_PORT", "1025"),
		From: getEnv("SMTP_FROM", "no-reply@salon.local"),
	}

	stripeConfig := StripeConfig{
		SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	salonConfig, err := loadSalonConfig()
	if err != nil {
		return nil, err
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:5173"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		Mailer:                    mailerConfig,
		Stripe:                    stripeConfig,
		Salon:                     salonConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

func loadSalonConfig() (SalonConfig, error) {
	tz := getEnv("SALON_TIMEZONE", "America/Lima")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return SalonConfig{}, fmt.Errorf("invalid SALON_TIMEZONE %q: %w", tz, err)
	}

	openHour, err := strconv.Atoi(getEnv("SALON_OPEN_HOUR", "9"))
	if err != nil {
		return SalonConfig{}, fmt.Errorf("invalid SALON_OPEN_HOUR: %w", err)
	}
	closeHour, err := strconv.Atoi(getEnv("SALON_CLOSE_HOUR", "20"))
	if err != nil {
		return SalonConfig{}, fmt.Errorf("invalid SALON_CLOSE_HOUR: %w", err)
	}
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return SalonConfig{}, fmt.Errorf("salon hours %d-%d are not a valid day window", openHour, closeHour)
	}

	return SalonConfig{
		Timezone:    tz,
		Location:    loc,
		OpenMinute:  openHour * 60,
		CloseMinute: closeHour * 60,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
