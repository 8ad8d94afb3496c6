package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Admin        AdminConfig
	Shop         ShopConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"SOLEIL_APP_ENV" required:"true"`
	Port         string `envconfig:"SOLEIL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOLEIL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOLEIL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOLEIL_DB_DSN"`
	Driver string `envconfig:"SOLEIL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOLEIL_DB_HOST"`
	LegacyPort     int    `envconfig:"SOLEIL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOLEIL_DB_USER"`
	LegacyPassword string `envconfig:"SOLEIL_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOLEIL_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOLEIL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOLEIL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOLEIL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOLEIL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOLEIL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOLEIL_REDIS_URL"`
	Address      string        `envconfig:"SOLEIL_REDIS_ADDR"`
	Password     string        `envconfig:"SOLEIL_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOLEIL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOLEIL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOLEIL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOLEIL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOLEIL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOLEIL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig signs and verifies the bearer tokens used by the admin console.
type AdminConfig struct {
	JWTSecret         string `envconfig:"SOLEIL_ADMIN_JWT_SECRET" required:"true"`
	JWTIssuer         string `envconfig:"SOLEIL_ADMIN_JWT_ISSUER" default:"soleil-admin"`
	ExpirationMinutes int    `envconfig:"SOLEIL_ADMIN_JWT_EXPIRATION_MINUTES" default:"480"`
}

// ShopConfig carries shop-wide business defaults.
type ShopConfig struct {
	OpenTime        string `envconfig:"SOLEIL_SHOP_OPEN_TIME" default:"09:00"`
	CloseTime       string `envconfig:"SOLEIL_SHOP_CLOSE_TIME" default:"18:00"`
	CalendarDays    int    `envconfig:"SOLEIL_SHOP_CALENDAR_DAYS" default:"90"`
	PointYenPerUnit int    `envconfig:"SOLEIL_SHOP_POINT_YEN_PER_UNIT" default:"100"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"SOLEIL_CART_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOLEIL_AUTO_MIGRATE" default:"false"`
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
