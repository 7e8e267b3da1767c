package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "CLOCKSYNK"

type Config struct {
	Timezone   string           `mapstructure:"timezone"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Data       DataConfig       `mapstructure:"data"`
	Dispatch   DispatchConfig   `mapstructure:"dispatch"`
	Recipients RecipientsConfig `mapstructure:"recipients"`
	Finance    FinanceConfig    `mapstructure:"finance"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver is "sqlite" or "mongo".
	Driver        string `mapstructure:"driver"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

type DataConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type DispatchConfig struct {
	Timeout         time.Duration  `mapstructure:"timeout"`
	DeliveryTimeout time.Duration  `mapstructure:"delivery_timeout"`
	Channels        []string       `mapstructure:"channels"`
	SendGrid        SendGridConfig `mapstructure:"sendgrid"`
	S3              S3Config       `mapstructure:"s3"`
}

type SendGridConfig struct {
	APIKey    string `mapstructure:"api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

type S3Config struct {
	Bucket  string `mapstructure:"bucket"`
	Profile string `mapstructure:"profile"`
}

type RecipientsConfig struct {
	File string `mapstructure:"file"`
}

type FinanceConfig struct {
	// Providers are summed into a single composite. Known names: static,
	// quickbooks, aws, azure.
	Providers  []string         `mapstructure:"providers"`
	Static     StaticFinance    `mapstructure:"static"`
	QuickBooks QuickBooksConfig `mapstructure:"quickbooks"`
	AWSProfile string           `mapstructure:"aws_profile"`
	// AzureProfile names a section of the Azure CLI config file.
	AzureProfile string `mapstructure:"azure_profile"`
}

type StaticFinance struct {
	Revenue  float64 `mapstructure:"revenue"`
	Expenses float64 `mapstructure:"expenses"`
	BurnRate float64 `mapstructure:"burn_rate"`
	Cash     float64 `mapstructure:"cash"`
	Runway   int     `mapstructure:"runway"`
}

type QuickBooksConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	RealmID     string `mapstructure:"realm_id"`
	AccessToken string `mapstructure:"access_token"`
	Sandbox     bool   `mapstructure:"sandbox"`
}

type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Weekly  string `mapstructure:"weekly"`
	Monthly string `mapstructure:"monthly"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Local")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "clocksynk.db")
	v.SetDefault("storage.mongo_uri", "")
	v.SetDefault("storage.mongo_database", "clocksynk")

	v.SetDefault("data.timeout", 10*time.Second)

	v.SetDefault("dispatch.timeout", 5*time.Second)
	v.SetDefault("dispatch.delivery_timeout", 60*time.Second)
	v.SetDefault("dispatch.channels", []string{"log"})
	v.SetDefault("dispatch.sendgrid.api_key", "")
	v.SetDefault("dispatch.sendgrid.from_email", "reports@clocksynk.com")
	v.SetDefault("dispatch.sendgrid.from_name", "ClockSynk Reports")
	v.SetDefault("dispatch.s3.bucket", "")
	v.SetDefault("dispatch.s3.profile", "")

	v.SetDefault("recipients.file", "")

	v.SetDefault("finance.providers", []string{})
	v.SetDefault("finance.static.revenue", 0)
	v.SetDefault("finance.static.expenses", 0)
	v.SetDefault("finance.static.burn_rate", 0)
	v.SetDefault("finance.static.cash", 0)
	v.SetDefault("finance.static.runway", 0)
	v.SetDefault("finance.quickbooks.base_url", "")
	v.SetDefault("finance.quickbooks.realm_id", "")
	v.SetDefault("finance.quickbooks.access_token", "")
	v.SetDefault("finance.quickbooks.sandbox", false)
	v.SetDefault("finance.aws_profile", "")
	v.SetDefault("finance.azure_profile", "")

	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.weekly", "0 0 9 * * 1")
	v.SetDefault("schedule.monthly", "0 0 9 1 * *")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads the YAML file at path when given, then lets CLOCKSYNK_*
// environment variables override it. A .env file in the working directory
// is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	case "mongo":
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Data.Timeout <= 0 || c.Dispatch.Timeout <= 0 || c.Dispatch.DeliveryTimeout <= 0 {
		return fmt.Errorf("data and dispatch timeouts must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the zone report windows are computed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
