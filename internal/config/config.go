package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Workers  WorkersConfig  `mapstructure:"workers" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Supported roster database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and locates the roster database.
type DatabaseConfig struct {
	// Driver is sqlite (default) or postgres.
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	// Path is the SQLite file; ":memory:" keeps the roster in memory.
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	// URL is the PostgreSQL connection string.
	URL       string `mapstructure:"url" validate:"required_if=Driver postgres"`
	BackupDir string `mapstructure:"backup_dir" validate:"required"`
}

// StorageConfig locates the JSON and bbolt data files.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" validate:"required"`
}

// WorkersConfig sizes the word-count and prime-search pools.
type WorkersConfig struct {
	Count     int `mapstructure:"count" validate:"gt=0,lte=256"`
	QueueSize int `mapstructure:"queue_size" validate:"gt=0"`
}
