package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LESSONKIT"

// Load reads configuration from environment variables on top of defaults.
// A nested key such as server.port is read from LESSONKIT_SERVER_PORT.
// Returns a populated Config or an error if unmarshalling or validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// setDefaults registers every key, which also lets AutomaticEnv find them
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "roster.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.backup_dir", "backups")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("workers.count", 4)
	v.SetDefault("workers.queue_size", 10000)
}
