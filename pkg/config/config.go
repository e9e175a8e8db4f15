package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	API           APIConfig
	Store         StoreConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Notifications NotificationsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// HTTPConfig is the local surface UI components talk to.
type HTTPConfig struct {
	Addr              string        `envconfig:"STOREFRONT_HTTP_ADDR" default:"127.0.0.1:8085"`
	ReadHeaderTimeout time.Duration `envconfig:"STOREFRONT_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"STOREFRONT_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins       []string      `envconfig:"STOREFRONT_HTTP_CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

// APIConfig points at the remote ordering platform (cart + catalog endpoints).
type APIConfig struct {
	BaseURL   string        `envconfig:"STOREFRONT_API_BASE_URL" required:"true"`
	Timeout   time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"10s"`
	UserAgent string        `envconfig:"STOREFRONT_API_USER_AGENT" default:"storefront-cart/1.0"`
}

// StoreConfig selects where the guest cart record lives.
type StoreConfig struct {
	Driver string        `envconfig:"STOREFRONT_STORE_DRIVER" default:"sqlite"`
	Key    string        `envconfig:"STOREFRONT_STORE_KEY" default:"cart"`
	TTL    time.Duration `envconfig:"STOREFRONT_STORE_TTL" default:"720h"`
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN" default:"file:storefront.db?_busy_timeout=5000"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// JWTConfig verifies access tokens handed to the session. Without a secret
// tokens are decoded but not verified; the remote API remains the authority.
type JWTConfig struct {
	Secret string        `envconfig:"STOREFRONT_JWT_SECRET"`
	Issuer string        `envconfig:"STOREFRONT_JWT_ISSUER"`
	Leeway time.Duration `envconfig:"STOREFRONT_JWT_LEEWAY" default:"30s"`
}

// Verifies reports whether token signatures can be checked locally.
func (j JWTConfig) Verifies() bool {
	return strings.TrimSpace(j.Secret) != ""
}

type NotificationsConfig struct {
	FeedSize int `envconfig:"STOREFRONT_NOTIFICATION_FEED_SIZE" default:"50"`
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvAPIBaseURL, err)
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDriverSQLite, StoreDriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for store driver %q", EnvDBDSN, c.Store.Driver)
		}
	case StoreDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for store driver %q", EnvRedisURL, EnvRedisAddr, c.Store.Driver)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.Store.Driver)
	}

	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("%s must not be empty", EnvStoreKey)
	}
	if c.Notifications.FeedSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvNotificationCap)
	}
	return nil
}
