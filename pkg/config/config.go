package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Billing       BillingConfig
	Reports       ReportsConfig
	Scan          ScanConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string        `envconfig:"WRENCHWORKS_APP_ENV" required:"true"`
	Port         string        `envconfig:"WRENCHWORKS_APP_PORT" required:"true"`
	LogLevel     string        `envconfig:"WRENCHWORKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool          `envconfig:"WRENCHWORKS_LOG_WARN_STACK" default:"false"`
	StartupPing  time.Duration `envconfig:"WRENCHWORKS_STARTUP_PING_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WRENCHWORKS_DB_DSN"`
	Driver string `envconfig:"WRENCHWORKS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WRENCHWORKS_DB_HOST"`
	LegacyPort     int    `envconfig:"WRENCHWORKS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WRENCHWORKS_DB_USER"`
	LegacyPassword string `envconfig:"WRENCHWORKS_DB_PASSWORD"`
	LegacyName     string `envconfig:"WRENCHWORKS_DB_NAME"`
	LegacySSLMode  string `envconfig:"WRENCHWORKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WRENCHWORKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WRENCHWORKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WRENCHWORKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WRENCHWORKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WRENCHWORKS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WRENCHWORKS_REDIS_ADDR"`
	Password     string        `envconfig:"WRENCHWORKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WRENCHWORKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WRENCHWORKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WRENCHWORKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WRENCHWORKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WRENCHWORKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WRENCHWORKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WRENCHWORKS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WRENCHWORKS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WRENCHWORKS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"WRENCHWORKS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WRENCHWORKS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WRENCHWORKS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WRENCHWORKS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WRENCHWORKS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WRENCHWORKS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WRENCHWORKS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"WRENCHWORKS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"WRENCHWORKS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"WRENCHWORKS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"WRENCHWORKS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"WRENCHWORKS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WRENCHWORKS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WRENCHWORKS_AUTO_MIGRATE" default:"false"`
}

type BillingConfig struct {
	// DefaultLaborRate is the fallback internal labor cost per hour when a
	// tenant has not configured one.
	DefaultLaborRate string `envconfig:"WRENCHWORKS_DEFAULT_LABOR_RATE" default:"1500"`
	CurrencyCode     string `envconfig:"WRENCHWORKS_CURRENCY_CODE" default:"LKR"`
}

// DefaultLaborRateDecimal parses the configured rate.
func (b BillingConfig) DefaultLaborRateDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(b.DefaultLaborRate)
}

type ReportsConfig struct {
	// MaxLineItems bounds the expense rows rendered into a document; the
	// remainder collapses into a "+N more" notice.
	MaxLineItems int `envconfig:"WRENCHWORKS_REPORT_MAX_LINE_ITEMS" default:"40"`
}

type ScanConfig struct {
	BaseURL string        `envconfig:"WRENCHWORKS_SCAN_BASE_URL"`
	APIKey  string        `envconfig:"WRENCHWORKS_SCAN_API_KEY"`
	Timeout time.Duration `envconfig:"WRENCHWORKS_SCAN_TIMEOUT" default:"15s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
