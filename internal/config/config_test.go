package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "agrimanager", cfg.MongoDB.DBName)
	assert.Equal(t, "0 6 1 * *", cfg.Scheduler.CronSchedule)
	assert.Equal(t, 5, cfg.Dashboard.TopN)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.Notifier.Enabled())
}

func TestLoadRejectsBadTopN(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DASHBOARD_TOP_N", "five")

	_, err := Load("testdata/does-not-exist.env")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:    ServerConfig{Port: "8080"},
		MongoDB:   MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "agrimanager"},
		Scheduler: SchedulerConfig{CronSchedule: "0 6 1 * *", Timezone: "UTC"},
		Dashboard: DashboardConfig{TopN: 5},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing mongo uri",
			mutate:  func(c *Config) { c.MongoDB.URI = "" },
			wantErr: "MONGODB_URI must be provided",
		},
		{
			name:    "missing db name",
			mutate:  func(c *Config) { c.MongoDB.DBName = "" },
			wantErr: "MONGODB_DB_NAME must be provided",
		},
		{
			name:    "half configured sheets import",
			mutate:  func(c *Config) { c.Sheets.SpreadsheetID = "sheet-id" },
			wantErr: "must be provided together",
		},
		{
			name:    "non positive top n",
			mutate:  func(c *Config) { c.Dashboard.TopN = 0 },
			wantErr: "DASHBOARD_TOP_N must be positive",
		},
		{
			name:    "missing cron schedule",
			mutate:  func(c *Config) { c.Scheduler.CronSchedule = "" },
			wantErr: "SNAPSHOT_CRON_SCHEDULE must be provided",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSheetsAndNotifierEnabled(t *testing.T) {
	sheets := SheetsConfig{CredentialsPath: "/etc/creds.json", SpreadsheetID: "abc"}
	assert.True(t, sheets.Enabled())

	notifier := NotifierConfig{WebhookURL: "https://hooks.example.com/farm"}
	assert.True(t, notifier.Enabled())
}
