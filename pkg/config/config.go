package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "foodhub"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, kept in one place so tests and deploy docs
// stay in sync with the struct tags below.
const (
	EnvAppEnv         = "FOODHUB_APP_ENV"
	EnvPort           = "FOODHUB_APP_PORT"
	EnvBackendBaseURL = "FOODHUB_BACKEND_BASE_URL"
	EnvRedisURL       = "FOODHUB_REDIS_URL"
	EnvGuestSecret    = "FOODHUB_GUEST_SECRET"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Cart    CartConfig
	Guest   GuestConfig
	Gate    GateConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"FOODHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FOODHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "prod")
}

// BackendConfig locates the FoodHub REST API the gateway proxies to.
type BackendConfig struct {
	BaseURL     string        `envconfig:"FOODHUB_BACKEND_BASE_URL" required:"true"`
	Timeout     time.Duration `envconfig:"FOODHUB_BACKEND_TIMEOUT" default:"10s"`
	SessionPath string        `envconfig:"FOODHUB_BACKEND_SESSION_PATH" default:"/api/auth/get-session"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend base url must be http(s), got %q", b.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODHUB_REDIS_URL"`
	Address      string        `envconfig:"FOODHUB_REDIS_ADDR"`
	Password     string        `envconfig:"FOODHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any redis endpoint was supplied. Without one
// the gateway falls back to in-process cart storage, which only survives
// for the lifetime of the process.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

// CartConfig tunes the cart store's persistence keys.
type CartConfig struct {
	BaseKey  string        `envconfig:"FOODHUB_CART_BASE_KEY" default:"foodhub_cart"`
	EntryTTL time.Duration `envconfig:"FOODHUB_CART_ENTRY_TTL" default:"720h"`
}

// GuestConfig signs the anonymous cart-scope cookie.
type GuestConfig struct {
	Secret     string        `envconfig:"FOODHUB_GUEST_SECRET" required:"true"`
	Issuer     string        `envconfig:"FOODHUB_GUEST_ISSUER" default:"foodhub-gateway"`
	CookieName string        `envconfig:"FOODHUB_GUEST_COOKIE" default:"fh_guest"`
	TTL        time.Duration `envconfig:"FOODHUB_GUEST_TTL" default:"720h"`
}

// GateConfig overrides the protected path prefixes. An empty list keeps
// the built-in defaults.
type GateConfig struct {
	Prefixes []string `envconfig:"FOODHUB_GATE_PREFIXES"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FOODHUB_CORS_ORIGINS" default:"http://localhost:3000"`
}
