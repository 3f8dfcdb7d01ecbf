package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TODO_STORE_DRIVER.
const EnvPrefix = "TODO"

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Port  string      `mapstructure:"port"`
	Log   LogConfig   `mapstructure:"log"`
	Store StoreConfig `mapstructure:"store"`
	DB    DBConfig    `mapstructure:"db"`
	Auth  AuthConfig  `mapstructure:"auth"`
	WS    WSConfig    `mapstructure:"ws"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory | sqlite
	Shards int    `mapstructure:"shards"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	BcryptCost int           `mapstructure:"bcrypt_cost"`
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type WSConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Defaults returns every known key with its default value.
func Defaults() map[string]any {
	return map[string]any{
		"port":             "3030",
		"log.level":        "info",
		"log.format":       "console",
		"store.driver":     DriverMemory,
		"store.shards":     32,
		"db.path":          "",
		"auth.bcrypt_cost": 10,
		"auth.signing_key": "",
		"auth.token_ttl":   time.Hour,
		"ws.interval":      time.Second,
	}
}

// Load reads configs/config.yml (or file, when set), then applies TODO_*
// environment overrides on top of the defaults. A missing config file is not an error.
func Load(file string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver)
	}
	if c.Store.Shards < 0 {
		return fmt.Errorf("store.shards: must be >= 0, got %d", c.Store.Shards)
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl: must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
