package config

import (
	"fmt"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/ilyakaznacheev/cleanenv"
)

// parseEnv overlays cfg with TK_* environment variables. Unset variables
// leave the current value untouched.
func parseEnv(cfg *Config) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("%w: environment: %w", common.ErrorIncorrectConfig, err)
	}
	return nil
}

// EnvHelp describes the supported environment variables.
func EnvHelp() string {
	help, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return help
}
