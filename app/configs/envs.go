package configs

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultJWTSecret only exists so development works without a .env file.
const DefaultJWTSecret = "dev_secret_change_me"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set in production")

type ENV struct {
	AppEnv      string
	Port        string
	AppURL      string
	AppTimezone string

	DBDriver     string
	DatabaseURL  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBMaxRetries int
	DBRetryDelay time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPSecure bool
	FromEmail  string

	MidtransServerKey string
	MidtransClientKey string
	MidtransEnv       string

	UploadDir       string
	CORSOrigins     []string
	LogMode         string
	LogFile         string
	ShutdownTimeout time.Duration
}

// IsDevelopment reports whether error details may be exposed to clients.
func (e ENV) IsDevelopment() bool {
	return e.AppEnv == "development"
}

// Validate rejects settings the server must not start with.
func (e ENV) Validate() error {
	if e.AppEnv == "production" && (e.JWTSecret == "" || e.JWTSecret == DefaultJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		zap.S().Warn("No .env file found, using process environment")
	}

	env := ENV{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", ":5000"),
		AppURL:      getEnv("APP_URL", "http://localhost:5173"),
		AppTimezone: getEnv("APP_TIMEZONE", ""),

		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "root"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       getEnv("DB_NAME", "vendoz"),
		DBMaxRetries: getEnvInt("DB_MAX_RETRIES", 10),
		DBRetryDelay: getEnvDuration("DB_RETRY_DELAY", 5*time.Second),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),

		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPPort:   getEnvInt("SMTP_PORT", 587),
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		SMTPSecure: getEnvBool("SMTP_SECURE", false),
		FromEmail:  os.Getenv("FROM_EMAIL"),

		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
		MidtransEnv:       getEnv("MIDTRANS_ENV", "sandbox"),

		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		LogMode:         getEnv("LOG_MODE", "development"),
		LogFile:         os.Getenv("LOG_FILE"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if env.FromEmail == "" {
		env.FromEmail = env.SMTPUser
	}
	if !strings.HasPrefix(env.Port, ":") && !strings.Contains(env.Port, ":") {
		env.Port = ":" + env.Port
	}

	return env
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		zap.S().Warnf("invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		zap.S().Warnf("invalid boolean for %s, using default %t", key, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		zap.S().Warnf("invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
