package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the immutable process configuration. It is built once at startup
// and handed to components; nothing reads the environment after Load returns.
type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	LoginLimit   LoginRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Media        MediaConfig
	Stripe       StripeConfig
	OneSignal    OneSignalConfig
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
	Env       string `envconfig:"EWA_APP_ENV" required:"true"`
	Port      string `envconfig:"EWA_APP_PORT" required:"true"`
	ServerURL string `envconfig:"EWA_SERVER_URL" default:"http://localhost:8080"`
	LogLevel  string `envconfig:"EWA_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"EWA_DB_DSN"`
	Driver string `envconfig:"EWA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EWA_DB_HOST"`
	LegacyPort     int    `envconfig:"EWA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EWA_DB_USER"`
	LegacyPassword string `envconfig:"EWA_DB_PASSWORD"`
	LegacyName     string `envconfig:"EWA_DB_NAME"`
	LegacySSLMode  string `envconfig:"EWA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EWA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EWA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EWA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EWA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EWA_REDIS_URL" required:"true"`
	Password     string        `envconfig:"EWA_REDIS_PASSWORD"`
	DB           int           `envconfig:"EWA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EWA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EWA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EWA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EWA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EWA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"EWA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"EWA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"EWA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"EWA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EWA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EWA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EWA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EWA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EWA_ARGON_KEY_LEN" default:"32"`
}

type LoginRateLimitConfig struct {
	Window     time.Duration `envconfig:"EWA_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	EmailLimit int           `envconfig:"EWA_LOGIN_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
	IPLimit    int           `envconfig:"EWA_LOGIN_RATE_LIMIT_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"EWA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"EWA_AUTO_MIGRATE" default:"false"`
}

type MediaConfig struct {
	RootDir     string `envconfig:"EWA_MEDIA_ROOT_DIR" default:"public"`
	MaxUploadMB int    `envconfig:"EWA_MEDIA_MAX_UPLOAD_MB" default:"5"`
}

type StripeConfig struct {
	SecretKey      string `envconfig:"EWA_STRIPE_SECRET_KEY"`
	PublishableKey string `envconfig:"EWA_STRIPE_PUBLISHABLE_KEY"`
	Env            string `envconfig:"EWA_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type OneSignalConfig struct {
	AppID   string `envconfig:"EWA_ONESIGNAL_APP_ID"`
	APIKey  string `envconfig:"EWA_ONESIGNAL_REST_API_KEY"`
	BaseURL string `envconfig:"EWA_ONESIGNAL_BASE_URL" default:"https://onesignal.com/api/v1"`
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
