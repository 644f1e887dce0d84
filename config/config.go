package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Database drivers
const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

// Config is everything the server reads from its environment
type Config struct {
	DB        DBConfig `mapstructure:"db"`
	PublicDir string   `mapstructure:"public_dir"`
	LogLevel  string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// DBConfig says which database to talk to
type DBConfig struct {
	Driver         string        `mapstructure:"driver" validate:"oneof=mongo badger"`
	Host           string        `mapstructure:"host" validate:"required_if=Driver mongo"`
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	Name           string        `mapstructure:"name" validate:"required"`
	Path           string        `mapstructure:"path"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

// env names per key; earlier names win
var envBindings = map[string][]string{
	"db.driver":          {"DB_DRIVER"},
	"db.host":            {"DB_HOST", "RDB_HOST"},
	"db.port":            {"DB_PORT", "RDB_PORT"},
	"db.name":            {"DB_NAME", "RDB_DB"},
	"db.path":            {"DB_PATH"},
	"db.connect_timeout": {"DB_CONNECT_TIMEOUT"},
	"public_dir":         {"PUBLIC_DIR"},
	"log_level":          {"LOG_LEVEL"},
}

// New returns a viper instance with defaults and environment bindings set.
// Callers may bind flags on top before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("db.driver", DriverMongo)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 28015)
	v.SetDefault("db.name", "blogger")
	v.SetDefault("db.path", "")
	v.SetDefault("db.connect_timeout", 10*time.Second)
	v.SetDefault("public_dir", "public")
	v.SetDefault("log_level", "info")

	for key, names := range envBindings {
		// BindEnv only fails when given no arguments
		_ = v.BindEnv(append([]string{key}, names...)...)
	}

	return v
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
