package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delivery-chain/storage"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is read from env vars, optionally from a .env or config file.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	JWT     JWTConfig
	// RefreshInterval is how often the in-memory state is re-announced to
	// stream subscribers.
	RefreshInterval time.Duration
}

type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

type HTTPConfig struct {
	Port    string
	GinMode string
}

// Addr is the listen address.
func (c HTTPConfig) Addr() string {
	return ":" + c.Port
}

type StorageConfig struct {
	Driver string // sqlite or memory
	Path   string // sqlite file
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// Load reads the configuration. Env vars win over files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Path:   v.GetString("DB_PATH"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: time.Duration(v.GetInt("JWT_EXPIRATION_MINUTES")) * time.Minute,
		},
		RefreshInterval: v.GetDuration("REFRESH_INTERVAL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "delivery-chain")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "delivery_chain.db")
	v.SetDefault("JWT_SECRET", "delivery_chain_demo_secret")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 24*60)
	v.SetDefault("REFRESH_INTERVAL", "2s")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES must be positive")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("config: REFRESH_INTERVAL must be positive")
	}
	return nil
}

// OpenDB opens the sqlite file and migrates the blob table.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	if err := storage.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenStorage returns the KV selected by the storage config.
func OpenStorage(c StorageConfig) (storage.KV, error) {
	if c.Driver == DriverMemory {
		return storage.NewMemory(), nil
	}
	db, err := OpenDB(c.Path)
	if err != nil {
		return nil, err
	}
	return storage.NewSQLite(db), nil
}
