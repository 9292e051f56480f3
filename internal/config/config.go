package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// Config contains runtime configuration for the server process.
type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPPort        string
	Storage         string
	JWTSecret       string
	TokenTTL        time.Duration
	RequestTimeout  time.Duration
	ComplexityLimit int

	Mongo    MongoConfig
	Postgres PostgresConfig
}

type MongoConfig struct {
	URI      string
	Database string
	// Timeout bounds connecting and every single store operation.
	Timeout time.Duration
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the gorm connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Name, c.Password, c.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", "8080")
	v.SetDefault("storage", StorageMemory)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 2*time.Hour)
	v.SetDefault("request_timeout", 20*time.Second)
	v.SetDefault("complexity_limit", 200)

	v.SetDefault("mongo_uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo_database", "tutorhub")
	v.SetDefault("mongo_timeout", 10*time.Second)

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "tutorhub")
	v.SetDefault("db_sslmode", "disable")
}

// Load reads .env, then the optional YAML file, then the environment. Later sources win.
func Load(configFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		AppEnv:          v.GetString("app_env"),
		LogLevel:        v.GetString("log_level"),
		HTTPPort:        strings.TrimSpace(v.GetString("http_port")),
		Storage:         strings.ToLower(strings.TrimSpace(v.GetString("storage"))),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        v.GetDuration("token_ttl"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		ComplexityLimit: v.GetInt("complexity_limit"),
		Mongo: MongoConfig{
			URI:      v.GetString("mongo_uri"),
			Database: v.GetString("mongo_database"),
			Timeout:  v.GetDuration("mongo_timeout"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	case StorageMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("MONGO_URI and MONGO_DATABASE are required for mongo storage")
		}
	default:
		return fmt.Errorf("unknown storage %q, expected memory, mongo or postgres", c.Storage)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.Mongo.Timeout <= 0 {
		return errors.New("MONGO_TIMEOUT must be positive")
	}
	if c.ComplexityLimit < 1 {
		return errors.New("COMPLEXITY_LIMIT must be >= 1")
	}
	return nil
}

// IsDevelopment reports whether the process runs with development defaults.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}
