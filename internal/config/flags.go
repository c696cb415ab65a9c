package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/flagx"
)

// flagNames lists the flags parseFlags understands. Everything else in args
// (-c/-config in particular) is left to other parsers.
var flagNames = []string{
	"storage", "data", "dsn",
	"s3-bucket", "s3-key", "s3-region", "s3-endpoint",
	"start-hour", "end-hour", "regular-rate", "overtime-rate", "multiplier",
	"policy", "tz", "seed",
	"log-level", "log-format",
	"watch", "long-session",
}

func allowedFlags() []string {
	out := make([]string, 0, len(flagNames)*2)
	for _, n := range flagNames {
		out = append(out, "-"+n, "--"+n)
	}
	return out
}

// parseFlags populates cfg from command-line flags.
//
//	-storage string       memory|json|sqlite|postgres|s3
//	-data string          file path for json and sqlite storage
//	-dsn string           database DSN for postgres (or sqlite)
//	-s3-bucket, -s3-key, -s3-region, -s3-endpoint string
//	-start-hour, -end-hour int
//	-regular-rate, -overtime-rate, -multiplier float
//	-policy string        reject|allow|autoclose
//	-tz string            IANA time zone for calendar days
//	-seed=bool            seed default data into empty storage
//	-log-level, -log-format string
//	-watch, -long-session duration
//
// Boolean flags must use the -seed=false form.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, allowedFlags())

	fs := flag.NewFlagSet("timekeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend")
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "data file path")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Key, "s3-key", cfg.S3Key, "S3 object key")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "S3 endpoint URL")
	fs.IntVar(&cfg.ScheduleStartHour, "start-hour", cfg.ScheduleStartHour, "work schedule start hour")
	fs.IntVar(&cfg.ScheduleEndHour, "end-hour", cfg.ScheduleEndHour, "work schedule end hour")
	fs.Float64Var(&cfg.RegularRate, "regular-rate", cfg.RegularRate, "regular hourly rate")
	fs.Float64Var(&cfg.OvertimeRate, "overtime-rate", cfg.OvertimeRate, "overtime hourly rate")
	fs.Float64Var(&cfg.OvertimeMultiplier, "multiplier", cfg.OvertimeMultiplier, "overtime premium multiplier")
	fs.StringVar(&cfg.ActiveEntryPolicy, "policy", cfg.ActiveEntryPolicy, "open entry policy")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "time zone")
	fs.BoolVar(&cfg.SeedDefaults, "seed", cfg.SeedDefaults, "seed default data")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")
	fs.DurationVar(&cfg.WatchInterval, "watch", cfg.WatchInterval, "session watcher interval")
	fs.DurationVar(&cfg.LongSessionAfter, "long-session", cfg.LongSessionAfter, "warn about sessions longer than this")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("%w: flags: %w", common.ErrorIncorrectConfig, err)
	}
	return nil
}
