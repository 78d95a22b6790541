package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "dispensary"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "DISPENSARY_DB_DSN"
	EnvDBHost = "DISPENSARY_DB_HOST"
	EnvDBUser = "DISPENSARY_DB_USER"
	EnvDBName = "DISPENSARY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DISPENSARY_APP_ENV" default:"dev"`
	Port         string `envconfig:"DISPENSARY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DISPENSARY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DISPENSARY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DISPENSARY_DB_DSN"`
	Driver string `envconfig:"DISPENSARY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DISPENSARY_DB_HOST"`
	LegacyPort     int    `envconfig:"DISPENSARY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DISPENSARY_DB_USER"`
	LegacyPassword string `envconfig:"DISPENSARY_DB_PASSWORD"`
	LegacyName     string `envconfig:"DISPENSARY_DB_NAME"`
	LegacySSLMode  string `envconfig:"DISPENSARY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DISPENSARY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DISPENSARY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DISPENSARY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DISPENSARY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DISPENSARY_REDIS_URL"`
	Address      string        `envconfig:"DISPENSARY_REDIS_ADDR"`
	Password     string        `envconfig:"DISPENSARY_REDIS_PASSWORD"`
	DB           int           `envconfig:"DISPENSARY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DISPENSARY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DISPENSARY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DISPENSARY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DISPENSARY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DISPENSARY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Idempotency
// replay is skipped entirely when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DISPENSARY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DISPENSARY_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"DISPENSARY_SEED_ON_BOOT" default:"true"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}

	if useSQLite || strings.EqualFold(db.Driver, "sqlite") {
		db.Driver = "sqlite"
		db.DSN = "file:dispensary.db?_pragma=foreign_keys(1)"
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
