package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Store  StoreConfig
	JWT    JWTConfig
	Admin  AdminConfig
	Redis  RedisConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StoreConfig selects the record store backend: "postgres" or "memory".
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// AdminConfig names the account ensured at startup. An empty email disables it.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	FullName string `mapstructure:"full_name"`
}

// RedisConfig holds the aggregate cache connection. An empty URL selects the
// in-process cache.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// S3Config holds settings of the export archive bucket.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the DARF_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DARF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "darf")
	v.SetDefault("db.password", "darf_secret")
	v.SetDefault("db.name", "darf_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("store.driver", "postgres")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "8h")
	v.SetDefault("jwt.issuer", "darf")

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.full_name", "Administrator")

	// Redis defaults (empty URL = in-process cache)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.cache_ttl", "10m")

	// S3 defaults
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "darf-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "sa-east-1")
	v.SetDefault("email.from_address", "noreply@darf.local")
	v.SetDefault("email.from_name", "DARF")
	v.SetDefault("email.recipients", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "DARF_SERVER_PORT",
		"server.read_timeout":  "DARF_SERVER_READ_TIMEOUT",
		"server.write_timeout": "DARF_SERVER_WRITE_TIMEOUT",
		"server.environment":   "DARF_SERVER_ENVIRONMENT",
		"db.host":              "DARF_DB_HOST",
		"db.port":              "DARF_DB_PORT",
		"db.user":              "DARF_DB_USER",
		"db.password":          "DARF_DB_PASSWORD",
		"db.name":              "DARF_DB_NAME",
		"db.sslmode":           "DARF_DB_SSLMODE",
		"db.max_open":          "DARF_DB_MAX_OPEN",
		"db.max_idle":          "DARF_DB_MAX_IDLE",
		"store.driver":         "DARF_STORE",
		"jwt.secret":           "DARF_JWT_SECRET",
		"jwt.access_expiry":    "DARF_JWT_ACCESS_EXPIRY",
		"jwt.issuer":           "DARF_JWT_ISSUER",
		"admin.email":          "DARF_ADMIN_EMAIL",
		"admin.password":       "DARF_ADMIN_PASSWORD",
		"admin.full_name":      "DARF_ADMIN_FULL_NAME",
		"redis.url":            "DARF_REDIS_URL",
		"redis.pool_size":      "DARF_REDIS_POOL_SIZE",
		"redis.min_idle_conns": "DARF_REDIS_MIN_IDLE_CONNS",
		"redis.dial_timeout":   "DARF_REDIS_DIAL_TIMEOUT",
		"redis.read_timeout":   "DARF_REDIS_READ_TIMEOUT",
		"redis.write_timeout":  "DARF_REDIS_WRITE_TIMEOUT",
		"redis.cache_ttl":      "DARF_REDIS_CACHE_TTL",
		"s3.region":            "DARF_S3_REGION",
		"s3.bucket":            "DARF_S3_BUCKET",
		"s3.endpoint":          "DARF_S3_ENDPOINT",
		"s3.access_key":        "DARF_S3_ACCESS_KEY",
		"s3.secret_key":        "DARF_S3_SECRET_KEY",
		"s3.presign_expiry":    "DARF_S3_PRESIGN_EXPIRY",
		"email.provider":       "DARF_EMAIL_PROVIDER",
		"email.region":         "DARF_EMAIL_REGION",
		"email.from_address":   "DARF_EMAIL_FROM_ADDRESS",
		"email.from_name":      "DARF_EMAIL_FROM_NAME",
		"email.recipients":     "DARF_EMAIL_RECIPIENTS",
		"log.level":            "DARF_LOG_LEVEL",
		"log.format":           "DARF_LOG_FORMAT",
		"cors.allowed_origins": "DARF_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platforms that set PORT win unless DARF_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DARF_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Store = StoreConfig{Driver: strings.ToLower(v.GetString("store.driver"))}
	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "memory" {
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Admin = AdminConfig{
		Email:    v.GetString("admin.email"),
		Password: v.GetString("admin.password"),
		FullName: v.GetString("admin.full_name"),
	}
	cfg.Redis = RedisConfig{
		URL:          v.GetString("redis.url"),
		PoolSize:     v.GetInt("redis.pool_size"),
		MinIdleConns: v.GetInt("redis.min_idle_conns"),
		DialTimeout:  v.GetDuration("redis.dial_timeout"),
		ReadTimeout:  v.GetDuration("redis.read_timeout"),
		WriteTimeout: v.GetDuration("redis.write_timeout"),
		CacheTTL:     v.GetDuration("redis.cache_ttl"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		Recipients:  splitList(v.GetString("email.recipients")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
