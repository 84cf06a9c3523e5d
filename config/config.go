// Package config loads the settings of the loans command.
//
// Settings are read, by increasing priority, from built-in defaults, an optional
// loans.yaml file, a .env file in the working directory, and LOANS_* environment
// variables (e.g. LOANS_STORE_DRIVER=sqlite). Command line flags override them all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "LOANS"

type Config struct {
	Store       StoreConfig   `mapstructure:"store"`
	Currency    string        `mapstructure:"currency"`
	Log         LogConfig     `mapstructure:"log"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the configuration.
//
// file is the path to a configuration file. If it is empty, a loans.yaml file is looked for
// in the working directory, and it is not an error if there is none.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.path", ".loans")
	v.SetDefault("currency", "USD")
	v.SetDefault("log.level", "warn")
	v.SetDefault("settle_delay", 500*time.Millisecond)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("loans")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	var errs error
	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown store driver %q, want %q or %q", c.Store.Driver, DriverFile, DriverSQLite))
	}
	if c.Store.Path == "" {
		errs = errors.Join(errs, errors.New("store path is empty"))
	}
	if money.GetCurrency(c.Currency) == nil {
		errs = errors.Join(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = errors.Join(errs, err)
	}
	if c.SettleDelay < 0 {
		errs = errors.Join(errs, fmt.Errorf("negative settle delay %v", c.SettleDelay))
	}
	return errs
}
