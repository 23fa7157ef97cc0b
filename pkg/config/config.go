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
	AuthRateLimit AuthRateLimitConfig
	Delivery      DeliveryConfig
	Mail          MailConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Delivery.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"UNIDEALS_APP_ENV" required:"true"`
	Port         string `envconfig:"UNIDEALS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"UNIDEALS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UNIDEALS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"UNIDEALS_DB_DSN"`
	Driver string `envconfig:"UNIDEALS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"UNIDEALS_DB_HOST"`
	Port     int    `envconfig:"UNIDEALS_DB_PORT" default:"5432"`
	User     string `envconfig:"UNIDEALS_DB_USER"`
	Password string `envconfig:"UNIDEALS_DB_PASSWORD"`
	Name     string `envconfig:"UNIDEALS_DB_NAME"`
	SSLMode  string `envconfig:"UNIDEALS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"UNIDEALS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"UNIDEALS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"UNIDEALS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"UNIDEALS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"UNIDEALS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"UNIDEALS_REDIS_ADDR"`
	Password     string        `envconfig:"UNIDEALS_REDIS_PASSWORD"`
	DB           int           `envconfig:"UNIDEALS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UNIDEALS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"UNIDEALS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"UNIDEALS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UNIDEALS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UNIDEALS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"UNIDEALS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"UNIDEALS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"UNIDEALS_JWT_EXPIRATION_MINUTES" default:"10080"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"UNIDEALS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"UNIDEALS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"UNIDEALS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"UNIDEALS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"UNIDEALS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"UNIDEALS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// DeliveryConfig holds the flat delivery-fee policy. The fee applies only to
// orders delivered outside campus.
type DeliveryConfig struct {
	OutsideFee string `envconfig:"UNIDEALS_DELIVERY_OUTSIDE_FEE" default:"5.00"`
}

func (d DeliveryConfig) validate() error {
	if _, err := decimal.NewFromString(d.OutsideFee); err != nil {
		return fmt.Errorf("invalid outside delivery fee %q: %w", d.OutsideFee, err)
	}
	return nil
}

// OutsideFeeAmount returns the configured fee as an exact decimal.
func (d DeliveryConfig) OutsideFeeAmount() decimal.Decimal {
	amount, err := decimal.NewFromString(d.OutsideFee)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

type MailConfig struct {
	FromAddress string `envconfig:"UNIDEALS_MAIL_FROM"`
	FromName    string `envconfig:"UNIDEALS_MAIL_FROM_NAME" default:"UniDeals"`

	SMTPHost     string `envconfig:"UNIDEALS_SMTP_HOST"`
	SMTPPort     int    `envconfig:"UNIDEALS_SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"UNIDEALS_SMTP_USER"`
	SMTPPassword string `envconfig:"UNIDEALS_SMTP_PASSWORD"`

	SendgridAPIKey string `envconfig:"UNIDEALS_SENDGRID_API_KEY"`

	MailjetAPIKey    string `envconfig:"UNIDEALS_MAILJET_API_KEY"`
	MailjetAPISecret string `envconfig:"UNIDEALS_MAILJET_API_SECRET"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"UNIDEALS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
