package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/pkg/dateutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
plan:
  start_date: "2025-01-01"
  end_date: "2025-12-31"
  extended_break: false
  required_percent: 50
  pto_allowance: 15.5
  policy: pto_as_office_day
  monthly_pto:
    "2025-07": 5
    "2025-12": 2.5
advisory:
  timeout: 30s
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	start, err := cfg.Plan.GetStartDate()
	require.NoError(t, err)
	assert.Equal(t, dateutil.NewDate(2025, time.January, 1), start)
	assert.False(t, cfg.Plan.ExtendedBreak)

	policy, err := cfg.Plan.GetPolicy()
	require.NoError(t, err)
	assert.Equal(t, accounting.PTOAsOfficeDay, policy)

	assert.True(t, cfg.Plan.GetRequiredFraction().Equal(decimal.RequireFromString("0.5")))
	assert.True(t, cfg.Plan.GetAllowance().Equal(decimal.RequireFromString("15.5")))

	alloc := cfg.Plan.GetAllocation()
	assert.Equal(t, accounting.PerMonthMode, alloc.Mode())
	assert.True(t, alloc.For("2025-12").Equal(decimal.RequireFromString("2.5")))

	assert.Equal(t, 30*time.Second, cfg.Advisory.GetTimeout())
	assert.Equal(t, ":9090", cfg.Server.Addr)

	// Defaults fill what the file leaves out.
	assert.Equal(t, "gemini-2.5-pro", cfg.Advisory.Model)
	assert.Equal(t, 2, cfg.Server.AdviceBurst)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Plan.ExtendedBreak)
	assert.True(t, cfg.Plan.GetRequiredFraction().Equal(accounting.DefaultRequiredFraction))
	assert.Equal(t, accounting.AverageMode, cfg.Plan.GetAllocation().Mode())

	start, err := cfg.Plan.GetStartDate()
	require.NoError(t, err)
	end, err := cfg.Plan.GetEndDate()
	require.NoError(t, err)
	assert.Equal(t, time.January, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, start.Year(), end.Year())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Plan: PlanConfig{
				StartDate:       "2025-01-01",
				EndDate:         "2025-12-31",
				RequiredPercent: 60,
				PTOAllowance:    20,
				Policy:          "subtract_from_workdays",
			},
			Server: ServerConfig{Addr: ":8080", AdvicePerMinute: 6, AdviceBurst: 2},
		}
	}

	base := valid()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"reversed range", func(c *Config) { c.Plan.StartDate = "2026-01-01" }},
		{"bad date", func(c *Config) { c.Plan.EndDate = "someday" }},
		{"percent above 100", func(c *Config) { c.Plan.RequiredPercent = 120 }},
		{"allowance above max", func(c *Config) { c.Plan.PTOAllowance = 61 }},
		{"allowance not half day", func(c *Config) { c.Plan.PTOAllowance = 10.25 }},
		{"unknown policy", func(c *Config) { c.Plan.Policy = "hybrid" }},
		{"average above max", func(c *Config) { c.Plan.AveragePTO = 8 }},
		{"bad month key", func(c *Config) { c.Plan.MonthlyPTO = map[string]float64{"July": 2} }},
		{"negative month pto", func(c *Config) { c.Plan.MonthlyPTO = map[string]float64{"2025-07": -1} }},
		{"no addr", func(c *Config) { c.Server.Addr = "" }},
		{"no rate", func(c *Config) { c.Server.AdvicePerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestAdvisoryAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	c := AdvisoryConfig{}
	assert.Equal(t, "google-key", c.GetAPIKey())

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	assert.Equal(t, "gemini-key", c.GetAPIKey())

	c.APIKey = "explicit"
	assert.Equal(t, "explicit", c.GetAPIKey())
}

func TestGetTimeoutFallback(t *testing.T) {
	assert.Equal(t, 2*time.Minute, (&AdvisoryConfig{}).GetTimeout())
	assert.Equal(t, 2*time.Minute, (&AdvisoryConfig{Timeout: "soon"}).GetTimeout())
}
