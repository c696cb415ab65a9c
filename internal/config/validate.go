package config

import (
	"fmt"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/go-playground/validator"
)

var validate = validator.New()

// Validate checks field constraints and the settings each storage backend
// depends on.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorIncorrectConfig, err)
	}

	switch c.Storage {
	case StorageJSON:
		if c.DataPath == "" {
			return fmt.Errorf("%w: json storage requires data_path", common.ErrorIncorrectConfig)
		}
	case StorageSQLite:
		if c.DataPath == "" && c.DatabaseDSN == "" {
			return fmt.Errorf("%w: sqlite storage requires data_path or database_dsn", common.ErrorIncorrectConfig)
		}
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%w: postgres storage requires database_dsn", common.ErrorIncorrectConfig)
		}
	case StorageS3:
		if c.S3Bucket == "" || c.S3Key == "" {
			return fmt.Errorf("%w: s3 storage requires s3_bucket and s3_key", common.ErrorIncorrectConfig)
		}
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %w", common.ErrorIncorrectConfig, c.Timezone, err)
	}
	return nil
}
