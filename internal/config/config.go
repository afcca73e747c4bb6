package config

import (
	"github.com/maxviazov/listresult/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Paging   PagingConfig        `mapstructure:"paging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	// Storage selects the repository backend: postgres or memory.
	Storage string `mapstructure:"storage" validate:"oneof=postgres memory"`
	// CorsOrigins lists browser origins allowed to call the API. Empty allows all.
	CorsOrigins []string `mapstructure:"cors_origins"`
	// Metrics exposes /metrics when set.
	Metrics bool `mapstructure:"metrics"`
}

// PostgresConfig is only validated when the postgres backend is selected.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
	MigrationsDir     string `mapstructure:"migrations_dir"`
}

// PagingConfig bounds the page sizes list endpoints accept.
type PagingConfig struct {
	DefaultSize int `mapstructure:"default_size" validate:"gt=0,ltefield=MaxSize"`
	MaxSize     int `mapstructure:"max_size" validate:"gt=0"`
}
