package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ProjectName      string
	APIPrefix        string
	Port             string
	GinMode          string
	FrontendDir      string
	CORSAllowOrigins []string
	Database         Database
	Auth             Auth
	Notify           Notify
}

type Database struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	LogQueries   bool
}

type Auth struct {
	SecretKey            string
	Algorithm            string
	TokenTTL             time.Duration
	AllowSuperuserSignup bool
}

type Notify struct {
	QueueSize    int
	EmailDelay   time.Duration
	KafkaBrokers []string
	KafkaTopic   string
}

var defaults = map[string]any{
	"PROJECT_NAME":                "BookMarket API",
	"API_V1_STR":                  "/api/v1",
	"PORT":                        "8000",
	"GIN_MODE":                    "release",
	"FRONTEND_DIR":                "frontend",
	"CORS_ALLOW_ORIGINS":          "*",
	"DB_DRIVER":                   "sqlite",
	"DATABASE_URL":                "",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     "5432",
	"DB_USER":                     "postgres",
	"DB_PASSWORD":                 "",
	"DB_NAME":                     "bookmarket",
	"DB_MAX_OPEN_CONNS":           10,
	"DB_LOG_QUERIES":              false,
	"SECRET_KEY":                  "",
	"ALGORITHM":                   "HS256",
	"ACCESS_TOKEN_EXPIRE_MINUTES": 30,
	"ALLOW_SUPERUSER_SIGNUP":      true,
	"NOTIFY_QUEUE_SIZE":           256,
	"NOTIFY_EMAIL_DELAY":          "0s",
	"KAFKA_BROKERS":               "",
	"KAFKA_TOPIC":                 "bookmarket.notifications",
}

// Load reads .env (if present), an optional config.yaml and the environment, in
// increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/bookmarket/")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		ProjectName:      v.GetString("PROJECT_NAME"),
		APIPrefix:        v.GetString("API_V1_STR"),
		Port:             v.GetString("PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		FrontendDir:      v.GetString("FRONTEND_DIR"),
		CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		Database: Database{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:          v.GetString("DATABASE_URL"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			LogQueries:   v.GetBool("DB_LOG_QUERIES"),
		},
		Auth: Auth{
			SecretKey:            v.GetString("SECRET_KEY"),
			Algorithm:            strings.ToUpper(v.GetString("ALGORITHM")),
			TokenTTL:             time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
			AllowSuperuserSignup: v.GetBool("ALLOW_SUPERUSER_SIGNUP"),
		},
		Notify: Notify{
			QueueSize:    v.GetInt("NOTIFY_QUEUE_SIZE"),
			EmailDelay:   v.GetDuration("NOTIFY_EMAIL_DELAY"),
			KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),
			KafkaTopic:   v.GetString("KAFKA_TOPIC"),
		},
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = defaultDSN(v, cfg.Database.Driver)
	}

	return cfg, nil
}

// defaultDSN builds a connection string from the discrete DB_* variables when
// DATABASE_URL is not given.
func defaultDSN(v *viper.Viper, driver string) string {
	switch driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			v.GetString("DB_HOST"), v.GetString("DB_USER"), v.GetString("DB_PASSWORD"),
			v.GetString("DB_NAME"), v.GetString("DB_PORT"),
		)
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true",
			v.GetString("DB_USER"), v.GetString("DB_PASSWORD"),
			v.GetString("DB_HOST"), v.GetString("DB_PORT"), v.GetString("DB_NAME"),
		)
	default:
		return "bookmarket.db"
	}
}

func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return errors.New("SECRET_KEY is not set in environment")
	}
	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported ALGORITHM %q", c.Auth.Algorithm)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if len(c.CORSAllowOrigins) == 0 {
		return errors.New("CORS_ALLOW_ORIGINS must list at least one origin")
	}
	if c.Notify.QueueSize <= 0 {
		return errors.New("NOTIFY_QUEUE_SIZE must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
