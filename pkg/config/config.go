package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig // CRM change events (optional)
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
}

// RedisConfig สำหรับ session store
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration // query ที่ช้ากว่านี้จะถูก log เป็น warn
}

// NATSConfig ถ้า URL ว่างจะไม่ publish event ออก NATS
type NATSConfig struct {
	URL string // nats://localhost:4222
}

type JWTConfig struct {
	Secret string
}

type AuthConfig struct {
	SessionTTL        time.Duration
	AllowRegistration bool
}

type CORSConfig struct {
	AllowOrigins string // comma-separated
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int    // จำนวน backup files
	MaxAge     int    // วัน
	Compress   bool   // บีบอัด backup
}

const defaultJWTSecret = "change-me"

func LoadConfig() (*Config, error) {
	// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	_ = godotenv.Load()

	logMaxSize := getEnvInt("LOG_MAX_SIZE", 100)
	logMaxBackups := getEnvInt("LOG_MAX_BACKUPS", 5)
	logMaxAge := getEnvInt("LOG_MAX_AGE", 30)
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	sessionTTLHours := getEnvInt("SESSION_TTL_HOURS", 24*7)
	slowQueryMs := getEnvInt("DB_SLOW_QUERY_MS", 200)

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Rental CRM"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			DBName:        getEnv("DB_NAME", "rental_crm"),
			SSLMode:       getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 5),
			SlowThreshold: time.Duration(slowQueryMs) * time.Millisecond,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
		},
		Auth: AuthConfig{
			SessionTTL:        time.Duration(sessionTTLHours) * time.Hour,
			AllowRegistration: getEnv("AUTH_ALLOW_REGISTRATION", "true") == "true",
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate ตรวจค่าที่ห้ามปล่อย default ใน production
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// AllowedOrigins แปลง comma-separated string เป็น slice
// เช่น "http://a.com, http://b.com" -> ["http://a.com", "http://b.com"]
func (c CORSConfig) AllowedOrigins() []string {
	var origins []string
	for _, p := range strings.Split(c.AllowOrigins, ",") {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
