package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Notifier  NotifierConfig
	Scheduler SchedulerConfig
	Dashboard DashboardConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the hosted MongoDB cluster.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to import purchases from a
// Google Sheets spreadsheet. The import feature is disabled when empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	PurchaseRange   string
}

// Enabled reports whether spreadsheet import has been configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// NotifierConfig contains credentials for the outbound webhook messenger.
// Notifications are disabled when the URL is empty.
type NotifierConfig struct {
	WebhookURL string
	AuthToken  string
	Channel    string
}

// Enabled reports whether outbound notifications have been configured.
func (c NotifierConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// SchedulerConfig holds the monthly snapshot job settings.
type SchedulerConfig struct {
	CronSchedule string
	Timezone     string
}

// DashboardConfig holds presentation defaults for the aggregation endpoints.
type DashboardConfig struct {
	TopN int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	topN, err := strconv.Atoi(getenvWithDefault("DASHBOARD_TOP_N", "5"))
	if err != nil {
		return nil, fmt.Errorf("DASHBOARD_TOP_N must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "agrimanager"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_IMPORT_ID"),
			PurchaseRange:   getenvWithDefault("GOOGLE_SHEET_PURCHASE_RANGE", "Achats!A:K"),
		},
		Notifier: NotifierConfig{
			WebhookURL: os.Getenv("NOTIFIER_WEBHOOK_URL"),
			AuthToken:  os.Getenv("NOTIFIER_AUTH_TOKEN"),
			Channel:    getenvWithDefault("NOTIFIER_CHANNEL", "farm-reports"),
		},
		Scheduler: SchedulerConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 6 1 * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Casablanca"),
		},
		Dashboard: DashboardConfig{
			TopN: topN,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	// Sheets import needs both halves of its configuration when either is set.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_IMPORT_ID must be provided together")
	}

	if c.Scheduler.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Scheduler.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Dashboard.TopN <= 0 {
		return errors.New("DASHBOARD_TOP_N must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
