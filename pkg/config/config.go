package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SHOPPINGCART"

	EnvAppEnv         = "SHOPPINGCART_APP_ENV"
	EnvLogLevel       = "SHOPPINGCART_LOG_LEVEL"
	EnvLogWarnStack   = "SHOPPINGCART_LOG_WARN_STACK"
	EnvCartFile       = "SHOPPINGCART_CART_FILE"
	EnvAutoLoad       = "SHOPPINGCART_AUTOLOAD"
	EnvRestoreOnFail  = "SHOPPINGCART_RESTORE_ON_FAILED_LOAD"
	EnvCurrencySymbol = "SHOPPINGCART_CURRENCY_SYMBOL"

	AppEnvDev = "dev"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Display DisplayConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPPINGCART_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"SHOPPINGCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPPINGCART_LOG_WARN_STACK" default:"false"`
}

// IsDev selects human-readable console logs instead of JSON.
func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// StorageConfig points at the flat file the cart is saved to and loaded from.
type StorageConfig struct {
	CartFile string `envconfig:"SHOPPINGCART_CART_FILE" default:"cart.txt"`
	AutoLoad bool   `envconfig:"SHOPPINGCART_AUTOLOAD" default:"false"`

	RestoreOnFailedLoad bool `envconfig:"SHOPPINGCART_RESTORE_ON_FAILED_LOAD" default:"false"`
}

type DisplayConfig struct {
	CurrencySymbol string `envconfig:"SHOPPINGCART_CURRENCY_SYMBOL" default:"$"`
}

func (s *StorageConfig) normalize() error {
	s.CartFile = strings.TrimSpace(s.CartFile)
	if s.CartFile == "" {
		return fmt.Errorf("%s must not be blank", EnvCartFile)
	}
	return nil
}
