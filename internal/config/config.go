package config

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/models"
)

const (
	StorageMemory   = "memory"
	StorageJSON     = "json"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
)

// Config holds runtime settings for the timekeeper CLI.
type Config struct {
	Storage        string `env:"TK_STORAGE" validate:"oneof=memory json sqlite postgres s3"`
	DataPath       string `env:"TK_DATA_PATH"`
	DatabaseDSN    string `env:"TK_DATABASE_DSN"`
	DataPassphrase string `env:"TK_DATA_PASSPHRASE"`

	S3Bucket       string `env:"TK_S3_BUCKET"`
	S3Key          string `env:"TK_S3_KEY"`
	S3Region       string `env:"TK_S3_REGION"`
	S3BaseEndpoint string `env:"TK_S3_BASE_ENDPOINT"`
	S3AccessKey    string `env:"TK_S3_ACCESS_KEY"`
	S3SecretKey    string `env:"TK_S3_SECRET_KEY"`

	ScheduleStartHour  int     `env:"TK_SCHEDULE_START_HOUR" validate:"gte=0,lte=23"`
	ScheduleEndHour    int     `env:"TK_SCHEDULE_END_HOUR" validate:"gte=0,lte=23,gtfield=ScheduleStartHour"`
	RegularRate        float64 `env:"TK_REGULAR_RATE" validate:"gte=0"`
	OvertimeRate       float64 `env:"TK_OVERTIME_RATE" validate:"gte=0"`
	OvertimeMultiplier float64 `env:"TK_OVERTIME_MULTIPLIER" validate:"gte=1"`

	ActiveEntryPolicy string `env:"TK_ACTIVE_ENTRY_POLICY" validate:"oneof=reject allow autoclose"`
	Timezone          string `env:"TK_TIMEZONE"`
	SeedDefaults      bool   `env:"TK_SEED_DEFAULTS"`

	LogLevel  string `env:"TK_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `env:"TK_LOG_FORMAT" validate:"oneof=text json"`

	WatchInterval    time.Duration `env:"TK_WATCH_INTERVAL" validate:"gt=0"`
	LongSessionAfter time.Duration `env:"TK_LONG_SESSION_AFTER" validate:"gt=0"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageJSON
	c.DataPath = "data/timekeeper.json"
	c.S3Key = "timekeeper/db.json"
	c.S3Region = "us-east-1"

	c.ScheduleStartHour = 9
	c.ScheduleEndHour = 17
	c.RegularRate = 20
	c.OvertimeRate = 30
	c.OvertimeMultiplier = 1.5

	c.ActiveEntryPolicy = "reject"
	c.Timezone = "Local"
	c.SeedDefaults = true

	c.LogLevel = "info"
	c.LogFormat = "text"

	c.WatchInterval = time.Minute
	c.LongSessionAfter = 10 * time.Hour
}

// Load builds a Config from defaults, the optional JSON file, the
// environment and args (usually os.Args[1:]), then validates it.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Schedule returns the configured work window.
func (c *Config) Schedule() models.WorkSchedule {
	return models.WorkSchedule{StartHour: c.ScheduleStartHour, EndHour: c.ScheduleEndHour}
}

// Rates returns the configured hourly rates.
func (c *Config) Rates() models.PayRates {
	return models.PayRates{RegularRate: c.RegularRate, OvertimeRate: c.OvertimeRate}
}

// Location resolves Timezone; "Local" and "" mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
