package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Marketplace MarketplaceConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// MarketplaceConfig holds the marketplace policy knobs. It implements
// marketplace.Policies so services can consume it directly.
type MarketplaceConfig struct {
	Active              bool
	RegistrationOpen    bool
	SellerAutoApproval  bool
	DefaultCommission   float64
	MinCommission       float64
	MaxCommission       float64
	MaxProducts         int
	ProductAutoApproval bool
	RatingActive        bool
	ReviewModeration    bool
	ReviewRequiresOrder bool
	MessagingActive     bool
	AnonymousMessaging  bool
	StatsCacheTTL       time.Duration
	StatsCacheDisabled  bool
}

// Enabled reports whether the marketplace as a whole is enabled.
func (m *MarketplaceConfig) Enabled() bool { return m.Active }

// SellerRegistrationAllowed reports whether new sellers may register.
func (m *MarketplaceConfig) SellerRegistrationAllowed() bool { return m.RegistrationOpen }

// AutoApproveSellers reports whether new sellers skip the pending queue.
func (m *MarketplaceConfig) AutoApproveSellers() bool { return m.SellerAutoApproval }

// DefaultCommissionRate returns the commission assigned at registration.
func (m *MarketplaceConfig) DefaultCommissionRate() decimal.Decimal {
	return decimal.NewFromFloat(m.DefaultCommission)
}

// CommissionBounds returns the inclusive [min, max] commission range.
func (m *MarketplaceConfig) CommissionBounds() (decimal.Decimal, decimal.Decimal) {
	return decimal.NewFromFloat(m.MinCommission), decimal.NewFromFloat(m.MaxCommission)
}

// MaxProductsPerSeller returns the per-seller listing quota.
func (m *MarketplaceConfig) MaxProductsPerSeller() int { return m.MaxProducts }

// AutoApproveProducts reports whether new listings skip moderation.
func (m *MarketplaceConfig) AutoApproveProducts() bool { return m.ProductAutoApproval }

// RatingEnabled reports whether the review/rating system is enabled.
func (m *MarketplaceConfig) RatingEnabled() bool { return m.RatingActive }

// ReviewModerationRequired reports whether new reviews start unapproved.
func (m *MarketplaceConfig) ReviewModerationRequired() bool { return m.ReviewModeration }

// PurchaseRequiredForReview reports whether a review must reference an order.
func (m *MarketplaceConfig) PurchaseRequiredForReview() bool { return m.ReviewRequiresOrder }

// MessagingEnabled reports whether buyer/seller messaging is enabled.
func (m *MarketplaceConfig) MessagingEnabled() bool { return m.MessagingActive }

// AnonymousMessagingAllowed reports whether unrelated parties may initiate contact.
func (m *MarketplaceConfig) AnonymousMessagingAllowed() bool { return m.AnonymousMessaging }

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with MARKETPLACE_ prefix (e.g., MARKETPLACE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans that default to true need an explicit default so an
	// absent key does not read as false.
	v.SetDefault("marketplace.enabled", true)
	v.SetDefault("marketplace.registration_open", true)
	v.SetDefault("marketplace.rating_enabled", true)
	v.SetDefault("marketplace.messaging_enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Marketplace: MarketplaceConfig{
			Active:              v.GetBool("marketplace.enabled"),
			RegistrationOpen:    v.GetBool("marketplace.registration_open"),
			SellerAutoApproval:  v.GetBool("marketplace.auto_approve_sellers"),
			DefaultCommission:   v.GetFloat64("marketplace.default_commission"),
			MinCommission:       v.GetFloat64("marketplace.min_commission"),
			MaxCommission:       v.GetFloat64("marketplace.max_commission"),
			MaxProducts:         v.GetInt("marketplace.max_products_per_seller"),
			ProductAutoApproval: v.GetBool("marketplace.auto_approve_products"),
			RatingActive:        v.GetBool("marketplace.rating_enabled"),
			ReviewModeration:    v.GetBool("marketplace.review_moderation"),
			ReviewRequiresOrder: v.GetBool("marketplace.review_requires_order"),
			MessagingActive:     v.GetBool("marketplace.messaging_enabled"),
			AnonymousMessaging:  v.GetBool("marketplace.anonymous_messaging"),
			StatsCacheTTL:       v.GetDuration("marketplace.stats_cache_ttl"),
			StatsCacheDisabled:  v.GetBool("marketplace.stats_cache_disabled"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "marketplace-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "marketplace"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly
	// configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Marketplace.DefaultCommission == 0 {
		cfg.Marketplace.DefaultCommission = 10
	}
	if cfg.Marketplace.MaxCommission == 0 {
		cfg.Marketplace.MaxCommission = 100
	}
	if cfg.Marketplace.MaxProducts == 0 {
		cfg.Marketplace.MaxProducts = 1000
	}
	if cfg.Marketplace.StatsCacheTTL == 0 {
		cfg.Marketplace.StatsCacheTTL = 5 * time.Minute
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	// Validate connection pool settings
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	// Commission bounds must form a valid percentage range
	m := &c.Marketplace
	if m.MinCommission < 0 || m.MaxCommission > 100 {
		return fmt.Errorf("marketplace commission bounds must stay within [0, 100]")
	}
	if m.MinCommission > m.MaxCommission {
		return fmt.Errorf("marketplace.min_commission (%f) cannot exceed marketplace.max_commission (%f)",
			m.MinCommission, m.MaxCommission)
	}
	if m.DefaultCommission < m.MinCommission || m.DefaultCommission > m.MaxCommission {
		return fmt.Errorf("marketplace.default_commission (%f) must lie within [%f, %f]",
			m.DefaultCommission, m.MinCommission, m.MaxCommission)
	}
	if m.MaxProducts < 0 {
		return fmt.Errorf("marketplace.max_products_per_seller cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		// CORS must not use wildcard with credentials
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
