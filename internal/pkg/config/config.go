package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (rates, timeouts, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Loyalty LoyaltyConfig
	Lookup  LookupConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Guayaquil"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Guayaquil"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-18000"` // -5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// Loyalty program parameters. The rates are product policy; the defaults
// mirror the figures the store has been running with.
type LoyaltyConfig struct {
	// Dollars of lifetime paid spend that earn one point.
	DollarsPerPoint int64 `envconfig:"LOYALTY_DOLLARS_PER_POINT" default:"10"`
	// Base store-credit ceiling granted to every customer, in dollars.
	CreditBase string `envconfig:"LOYALTY_CREDIT_BASE" default:"50.00"`
	// credit_limit = base + total_spent * CreditRate
	CreditRate string `envconfig:"LOYALTY_CREDIT_RATE" default:"0.10"`
	// loan_limit grows by paid_amount * LoanBonusRate per paid order.
	LoanBonusRate string `envconfig:"LOYALTY_LOAN_BONUS_RATE" default:"0.05"`
}

// External catalog lookup sources. Best-effort only: a failed lookup
// degrades to an empty pre-fill and never blocks catalog writes.
type LookupConfig struct {
	CocktailBaseURL string        `envconfig:"LOOKUP_COCKTAIL_BASE_URL" default:"https://www.thecocktaildb.com/api/json/v1/1"`
	FoodBaseURL     string        `envconfig:"LOOKUP_FOOD_BASE_URL" default:"https://world.openfoodfacts.org/api/v0"`
	BarcodeBaseURL  string        `envconfig:"LOOKUP_BARCODE_BASE_URL" default:"https://api.upcitemdb.com/prod/trial"`
	Timeout         time.Duration `envconfig:"LOOKUP_TIMEOUT" default:"5s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Guayaquil",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Guayaquil",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -18000,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
		},
		Loyalty: LoyaltyConfig{
			DollarsPerPoint: 10,
			CreditBase:      "50.00",
			CreditRate:      "0.10",
			LoanBonusRate:   "0.05",
		},
		// Unroutable lookup endpoints: tests must never reach the public
		// catalogs, and a refused connection degrades to an empty pre-fill.
		Lookup: LookupConfig{
			CocktailBaseURL: "http://127.0.0.1:1",
			FoodBaseURL:     "http://127.0.0.1:1",
			BarcodeBaseURL:  "http://127.0.0.1:1",
			Timeout:         100 * time.Millisecond,
		},
	}
}
