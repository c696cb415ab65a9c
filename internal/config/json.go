package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/flagx"
	"github.com/dmitrijs2005/timekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. It is prefilled from
// the current Config, so keys missing from the file keep their value.
type JsonConfig struct {
	Storage        string `json:"storage"`
	DataPath       string `json:"data_path"`
	DatabaseDSN    string `json:"database_dsn"`
	DataPassphrase string `json:"data_passphrase"`

	S3Bucket       string `json:"s3_bucket"`
	S3Key          string `json:"s3_key"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`

	ScheduleStartHour  int     `json:"schedule_start_hour"`
	ScheduleEndHour    int     `json:"schedule_end_hour"`
	RegularRate        float64 `json:"regular_rate"`
	OvertimeRate       float64 `json:"overtime_rate"`
	OvertimeMultiplier float64 `json:"overtime_multiplier"`

	ActiveEntryPolicy string `json:"active_entry_policy"`
	Timezone          string `json:"timezone"`
	SeedDefaults      bool   `json:"seed_defaults"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	WatchInterval    timex.Duration `json:"watch_interval"`
	LongSessionAfter timex.Duration `json:"long_session_after"`
}

// parseJSON overlays cfg with the file named by -c/-config in args.
// Without the flag nothing changes.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", common.ErrorIncorrectConfig, path, err)
	}

	jc := toJSON(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("%w: decode %s: %w", common.ErrorIncorrectConfig, path, err)
	}
	fromJSON(cfg, jc)
	return nil
}

func toJSON(c *Config) JsonConfig {
	return JsonConfig{
		Storage:            c.Storage,
		DataPath:           c.DataPath,
		DatabaseDSN:        c.DatabaseDSN,
		DataPassphrase:     c.DataPassphrase,
		S3Bucket:           c.S3Bucket,
		S3Key:              c.S3Key,
		S3Region:           c.S3Region,
		S3BaseEndpoint:     c.S3BaseEndpoint,
		S3AccessKey:        c.S3AccessKey,
		S3SecretKey:        c.S3SecretKey,
		ScheduleStartHour:  c.ScheduleStartHour,
		ScheduleEndHour:    c.ScheduleEndHour,
		RegularRate:        c.RegularRate,
		OvertimeRate:       c.OvertimeRate,
		OvertimeMultiplier: c.OvertimeMultiplier,
		ActiveEntryPolicy:  c.ActiveEntryPolicy,
		Timezone:           c.Timezone,
		SeedDefaults:       c.SeedDefaults,
		LogLevel:           c.LogLevel,
		LogFormat:          c.LogFormat,
		WatchInterval:      timex.Duration{Duration: c.WatchInterval},
		LongSessionAfter:   timex.Duration{Duration: c.LongSessionAfter},
	}
}

func fromJSON(c *Config, jc JsonConfig) {
	c.Storage = jc.Storage
	c.DataPath = jc.DataPath
	c.DatabaseDSN = jc.DatabaseDSN
	c.DataPassphrase = jc.DataPassphrase
	c.S3Bucket = jc.S3Bucket
	c.S3Key = jc.S3Key
	c.S3Region = jc.S3Region
	c.S3BaseEndpoint = jc.S3BaseEndpoint
	c.S3AccessKey = jc.S3AccessKey
	c.S3SecretKey = jc.S3SecretKey
	c.ScheduleStartHour = jc.ScheduleStartHour
	c.ScheduleEndHour = jc.ScheduleEndHour
	c.RegularRate = jc.RegularRate
	c.OvertimeRate = jc.OvertimeRate
	c.OvertimeMultiplier = jc.OvertimeMultiplier
	c.ActiveEntryPolicy = jc.ActiveEntryPolicy
	c.Timezone = jc.Timezone
	c.SeedDefaults = jc.SeedDefaults
	c.LogLevel = jc.LogLevel
	c.LogFormat = jc.LogFormat
	c.WatchInterval = jc.WatchInterval.Duration
	c.LongSessionAfter = jc.LongSessionAfter.Duration
}
