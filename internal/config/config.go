package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Pyroscope  PyroscopeConfig  `mapstructure:"pyroscope"`
}

type DeploymentConfig struct {
	Mode  types.RunMode `mapstructure:"mode" validate:"required,oneof=local api"`
	Debug bool          `mapstructure:"debug"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level    types.LogLevel `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	FilePath string         `mapstructure:"file_path"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host" validate:"required"`
	Port                   int    `mapstructure:"port" validate:"required"`
	User                   string `mapstructure:"user" validate:"required"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address" validate:"required_if=Enabled true"`
	ApplicationName string   `mapstructure:"application_name" validate:"required_if=Enabled true"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_password"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoice-service")

	setDefaults(v)

	// INVOICE_POSTGRES_HOST overrides postgres.host
	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		fmt.Println("No config file found, using defaults and environment")
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return load(v)
}

func load(v *viper.Viper) (*Configuration, error) {
	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that are
// absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("deployment.debug", true)

	v.SetDefault("server.address", "0.0.0.0:8000")

	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("logging.file_path", "logs/app.log")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "invoice_user")
	v.SetDefault("postgres.password", "invoice_password")
	v.SetDefault("postgres.dbname", "invoice_db")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("postgres.auto_migrate", false)

	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:8080",
		"http://localhost:5173",
		"http://localhost:3000",
	})

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "local")
	v.SetDefault("sentry.sample_rate", 1.0)

	v.SetDefault("pyroscope.enabled", false)
	v.SetDefault("pyroscope.server_address", "http://localhost:4040")
	v.SetDefault("pyroscope.application_name", "invoice-service")
	v.SetDefault("pyroscope.basic_auth_user", "")
	v.SetDefault("pyroscope.basic_auth_password", "")
	v.SetDefault("pyroscope.sample_rate", 100)
	v.SetDefault("pyroscope.disable_gc_runs", false)
	v.SetDefault("pyroscope.profile_types", []string{})
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests. It never touches the filesystem or the environment.
func GetDefaultConfig() *Configuration {
	v := viper.New()
	setDefaults(v)
	cfg, err := load(v)
	if err != nil {
		panic(fmt.Sprintf("invalid default configuration: %v", err))
	}
	return cfg
}

// EffectiveLogLevel applies the debug flag on top of the configured level
func (c Configuration) EffectiveLogLevel() types.LogLevel {
	if c.Deployment.Debug {
		return types.LogLevelDebug
	}
	return c.Logging.Level
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
