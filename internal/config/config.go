package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/username/rto-planner/internal/accounting"
	"github.com/username/rto-planner/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Plan     PlanConfig     `mapstructure:"plan"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// PlanConfig is the default planning scenario
type PlanConfig struct {
	StartDate       string             `mapstructure:"start_date"` // YYYY-MM-DD, default Jan 1 of this year
	EndDate         string             `mapstructure:"end_date"`   // YYYY-MM-DD, default Dec 31 of this year
	ExtendedBreak   bool               `mapstructure:"extended_break"`
	RequiredPercent float64            `mapstructure:"required_percent"`
	PTOAllowance    float64            `mapstructure:"pto_allowance"`
	Policy          string             `mapstructure:"policy"`
	AveragePTO      float64            `mapstructure:"average_pto"`
	MonthlyPTO      map[string]float64 `mapstructure:"monthly_pto"` // "YYYY-MM" -> days; overrides average_pto
	HolidaysFile    string             `mapstructure:"holidays_file"`
}

// AdvisoryConfig represents language model configuration
type AdvisoryConfig struct {
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	Timeout string `mapstructure:"timeout"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	AdvicePerMinute float64  `mapstructure:"advice_per_minute"`
	AdviceBurst     int      `mapstructure:"advice_burst"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const (
	maxPTOAllowance = 60
	maxAveragePTO   = 7
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("plan.extended_break", true)
	v.SetDefault("plan.required_percent", 60)
	v.SetDefault("plan.pto_allowance", 20)
	v.SetDefault("plan.policy", accounting.SubtractFromWorkdays.String())
	v.SetDefault("plan.average_pto", 0)
	v.SetDefault("advisory.model", "gemini-2.5-pro")
	v.SetDefault("advisory.timeout", "2m")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.advice_per_minute", 6)
	v.SetDefault("server.advice_burst", 2)
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. Without an explicit path a missing
// config file is fine and defaults apply.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rto-planner")
		v.AddConfigPath("/etc/rto-planner")
	}

	// Read environment variables, e.g. RTO_PLAN_PTO_ALLOWANCE
	v.SetEnvPrefix("rto")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Plan config
	start, err := c.Plan.GetStartDate()
	if err != nil {
		return fmt.Errorf("plan.start_date: %w", err)
	}
	end, err := c.Plan.GetEndDate()
	if err != nil {
		return fmt.Errorf("plan.end_date: %w", err)
	}
	if start.After(end) {
		return fmt.Errorf("plan.start_date %s is after plan.end_date %s",
			start.Format(dateutil.DateFormat), end.Format(dateutil.DateFormat))
	}
	if c.Plan.RequiredPercent < 0 || c.Plan.RequiredPercent > 100 {
		return fmt.Errorf("plan.required_percent must be between 0 and 100")
	}
	if c.Plan.PTOAllowance < 0 || c.Plan.PTOAllowance > maxPTOAllowance {
		return fmt.Errorf("plan.pto_allowance must be between 0 and %d", maxPTOAllowance)
	}
	if !isHalfDay(c.Plan.PTOAllowance) {
		return fmt.Errorf("plan.pto_allowance must be in half days, got %v", c.Plan.PTOAllowance)
	}
	if _, err := c.Plan.GetPolicy(); err != nil {
		return fmt.Errorf("plan.policy: %w", err)
	}
	if c.Plan.AveragePTO < 0 || c.Plan.AveragePTO > maxAveragePTO {
		return fmt.Errorf("plan.average_pto must be between 0 and %d", maxAveragePTO)
	}
	if !isHalfDay(c.Plan.AveragePTO) {
		return fmt.Errorf("plan.average_pto must be in half days, got %v", c.Plan.AveragePTO)
	}
	for month, days := range c.Plan.MonthlyPTO {
		if _, err := time.Parse(dateutil.MonthKeyFormat, month); err != nil {
			return fmt.Errorf("plan.monthly_pto key %q must be YYYY-MM", month)
		}
		if days < 0 || !isHalfDay(days) {
			return fmt.Errorf("plan.monthly_pto[%s] must be a non-negative number of half days, got %v", month, days)
		}
	}

	// Validate Server config
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.AdvicePerMinute <= 0 {
		return fmt.Errorf("server.advice_per_minute must be positive")
	}
	if c.Server.AdviceBurst <= 0 {
		return fmt.Errorf("server.advice_burst must be positive")
	}

	return nil
}

func isHalfDay(v float64) bool {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(2)).IsInteger()
}

// GetStartDate returns the configured start date or Jan 1 of this year
func (c *PlanConfig) GetStartDate() (time.Time, error) {
	if c.StartDate == "" {
		return dateutil.StartOfYear(dateutil.Today().Year()), nil
	}
	return dateutil.ParseDate(c.StartDate)
}

// GetEndDate returns the configured end date or Dec 31 of this year
func (c *PlanConfig) GetEndDate() (time.Time, error) {
	if c.EndDate == "" {
		return dateutil.EndOfYear(dateutil.Today().Year()), nil
	}
	return dateutil.ParseDate(c.EndDate)
}

// GetPolicy returns the configured PTO accounting policy
func (c *PlanConfig) GetPolicy() (accounting.Policy, error) {
	if c.Policy == "" {
		return accounting.SubtractFromWorkdays, nil
	}
	return accounting.ParsePolicy(c.Policy)
}

// GetRequiredFraction converts required_percent to a fraction
func (c *PlanConfig) GetRequiredFraction() decimal.Decimal {
	return decimal.NewFromFloat(c.RequiredPercent).Div(decimal.NewFromInt(100))
}

// GetAllowance returns the PTO allowance
func (c *PlanConfig) GetAllowance() decimal.Decimal {
	return decimal.NewFromFloat(c.PTOAllowance)
}

// GetAllocation returns per-month PTO when monthly_pto is set and the
// average otherwise
func (c *PlanConfig) GetAllocation() accounting.PTOAllocation {
	if len(c.MonthlyPTO) == 0 {
		return accounting.AveragePTO(decimal.NewFromFloat(c.AveragePTO))
	}
	days := make(map[string]decimal.Decimal, len(c.MonthlyPTO))
	for month, d := range c.MonthlyPTO {
		days[month] = decimal.NewFromFloat(d)
	}
	return accounting.PerMonthPTO(days)
}

// GetTimeout returns the advisory call timeout
func (c *AdvisoryConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 2 * time.Minute
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil || duration <= 0 {
		return 2 * time.Minute
	}
	return duration
}

// GetAPIKey returns the configured key or GEMINI_API_KEY / GOOGLE_API_KEY
func (c *AdvisoryConfig) GetAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Advisory.APIKey = os.ExpandEnv(c.Advisory.APIKey)
	c.Plan.HolidaysFile = os.ExpandEnv(c.Plan.HolidaysFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
