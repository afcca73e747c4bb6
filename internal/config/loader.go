package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// secretKeys are never expected in the YAML file, so viper has to be told
// about them explicitly for APP_* overrides to reach Unmarshal.
var secretKeys = []string{"postgres.user", "postgres.password", "postgres.db"}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	for _, key := range secretKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	setDefaults(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "listresult")
	v.SetDefault("app.version", "0.0.1")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.storage", "postgres")
	v.SetDefault("app.metrics", true)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.migrations_dir", "migrations/goose_sql")
	v.SetDefault("paging.default_size", 20)
	v.SetDefault("paging.max_size", 100)
}

// Validate checks the loaded configuration. Postgres settings are skipped for
// the in-memory backend.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.App); err != nil {
		return fmt.Errorf("app config validation error: %w", err)
	}
	if err := v.Struct(c.Paging); err != nil {
		return fmt.Errorf("paging config validation error: %w", err)
	}
	if c.App.Storage == "postgres" {
		if err := v.Struct(c.Postgres); err != nil {
			return fmt.Errorf("postgres config validation error: %w", err)
		}
	}
	return nil
}
