package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported persistence gateways
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Store  StoreConfig
	Mongo  MongoConfig
	DB     DatabaseConfig
	App    AppConfig
	HTTP   HTTPConfig
	Logger LoggerConfig
}

// StoreConfig selects the persistence gateway
type StoreConfig struct {
	Driver string `mapstructure:"STORE_DRIVER"`
}

// MongoConfig holds configuration for the document store
type MongoConfig struct {
	URI                   string `mapstructure:"MONGODB_URI"`
	Database              string `mapstructure:"MONGODB_DATABASE"`
	Collection            string `mapstructure:"MONGODB_COLLECTION"`
	ConnectTimeoutSeconds int    `mapstructure:"MONGODB_CONNECT_TIMEOUT_SECONDS"`
}

// DatabaseConfig holds configuration for the relational database
type DatabaseConfig struct {
	Host            string `mapstructure:"DB_HOST"`
	Port            string `mapstructure:"DB_PORT"`
	User            string `mapstructure:"DB_USER"`
	Password        string `mapstructure:"DB_PASSWORD"`
	Name            string `mapstructure:"DB_NAME"`
	SSLMode         string `mapstructure:"DB_SSLMODE"`
	MaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `mapstructure:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime int    `mapstructure:"DB_CONN_MAX_IDLE_TIME"`
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	Environment            string `mapstructure:"APP_ENV"`
	HTTPPort               string `mapstructure:"HTTP_PORT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// HTTPConfig holds configuration for the HTTP surface around the API
type HTTPConfig struct {
	StaticDir        string   `mapstructure:"STATIC_DIR"`
	SwaggerSpecPath  string   `mapstructure:"SWAGGER_SPEC_PATH"`
	CORSAllowOrigins []string `mapstructure:"CORS_ALLOW_ORIGINS"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from path/app.env and environment variables.
// A path/.env file, when present, is loaded into the process environment
// first; variables already set in the environment win over it.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	v.AutomaticEnv() // Read from environment variables

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.Store.Driver = strings.ToLower(v.GetString("STORE_DRIVER"))

	config.Mongo.URI = v.GetString("MONGODB_URI")
	config.Mongo.Database = v.GetString("MONGODB_DATABASE")
	config.Mongo.Collection = v.GetString("MONGODB_COLLECTION")
	config.Mongo.ConnectTimeoutSeconds = v.GetInt("MONGODB_CONNECT_TIMEOUT_SECONDS")

	config.DB.Host = v.GetString("DB_HOST")
	config.DB.Port = v.GetString("DB_PORT")
	config.DB.User = v.GetString("DB_USER")
	config.DB.Password = v.GetString("DB_PASSWORD")
	config.DB.Name = v.GetString("DB_NAME")
	config.DB.SSLMode = v.GetString("DB_SSLMODE")
	config.DB.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	config.DB.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	config.DB.ConnMaxLifetime = v.GetInt("DB_CONN_MAX_LIFETIME")
	config.DB.ConnMaxIdleTime = v.GetInt("DB_CONN_MAX_IDLE_TIME")

	config.App.Environment = v.GetString("APP_ENV")
	config.App.HTTPPort = v.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.HTTP.StaticDir = v.GetString("STATIC_DIR")
	config.HTTP.SwaggerSpecPath = v.GetString("SWAGGER_SPEC_PATH")
	config.HTTP.CORSAllowOrigins = splitList(v.GetString("CORS_ALLOW_ORIGINS"))

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STORE_DRIVER", DriverMongo)

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "usuarios_service")
	v.SetDefault("MONGODB_COLLECTION", "usuarios")
	v.SetDefault("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "usuarios")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "3000")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	v.SetDefault("STATIC_DIR", "frontend")
	v.SetDefault("SWAGGER_SPEC_PATH", "./api/swagger/usuarios.swagger.json")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	// Logger defaults
	_ = v.BindEnv("APP_ENV")
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "usuarios-service")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// Validate checks that the loaded configuration can start the service
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required"))
		}
		if c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGODB_DATABASE is required"))
		}
		if c.Mongo.Collection == "" {
			errs = append(errs, errors.New("MONGODB_COLLECTION is required"))
		}
		if c.Mongo.ConnectTimeoutSeconds <= 0 {
			errs = append(errs, errors.New("MONGODB_CONNECT_TIMEOUT_SECONDS must be positive"))
		}
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver))
	}

	if c.App.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be positive"))
	}

	return errors.Join(errs...)
}

// DSN returns the PostgreSQL Data Source Name
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
