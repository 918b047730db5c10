package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	Port string     `mapstructure:"port" validate:"required"`
	Log  LogConfig  `mapstructure:"log"`
	DB   DBConfig   `mapstructure:"db"`
	JWT  JWTConfig  `mapstructure:"jwt"`
	CORS CORSConfig `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type DBConfig struct {
	Driver string       `mapstructure:"driver" validate:"oneof=mongo sqlite"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret" validate:"required"`
	RefreshSecret string        `mapstructure:"refresh_secret" validate:"required"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry" validate:"gt=0"`
	// RefreshExpiry of zero issues refresh tokens without an exp claim.
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry" validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var errMongoURIRequired = errors.New("db.mongo.uri (MONGO_URI) is required when db.driver is mongo")

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"port":                 "PORT",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
	"db.driver":            "DB_DRIVER",
	"db.mongo.uri":         "MONGO_URI",
	"db.mongo.database":    "MONGO_DATABASE",
	"db.mongo.timeout":     "MONGO_TIMEOUT",
	"db.sqlite.path":       "SQLITE_PATH",
	"jwt.access_secret":    "JWT_SECRET",
	"jwt.refresh_secret":   "JWT_REFRESH_SECRET",
	"jwt.access_expiry":    "JWT_EXPIRY",
	"jwt.refresh_expiry":   "JWT_REFRESH_EXPIRY",
	"cors.allowed_origins": "ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", DriverMongo)
	v.SetDefault("db.mongo.database", "learning_platform")
	v.SetDefault("db.mongo.timeout", 10*time.Second)
	v.SetDefault("db.sqlite.path", "app.db")
	v.SetDefault("jwt.access_expiry", time.Hour)
	v.SetDefault("jwt.refresh_expiry", time.Duration(0))
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads .env, then configs/config.yml (searched in paths, default
// "configs"), then environment overrides, and validates the result.
// A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.DB.Driver == DriverMongo && strings.TrimSpace(c.DB.Mongo.URI) == "" {
		return errMongoURIRequired
	}
	return nil
}

// splitOrigins flattens comma separated entries coming from ALLOWED_ORIGINS.
func splitOrigins(in []string) []string {
	var out []string
	for _, raw := range in {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
