package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailjet  MailjetConfig
	Redis    RedisConfig
	Rental   RentalConfig
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type AppConfig struct {
	Name                    string
	Version                 string
	Environment             string
	AppDeploymentUrl        string
	AppEmailVerificationKey string
	AdminApiKey             string
	AllowOrigins            []string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	SessionTTL time.Duration
}

// RedisConfig leaves RedisHost empty to keep sessions in process memory.
type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	PoolSize      int
	MinIdleConns  int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

type RentalConfig struct {
	MockPassword      string
	SimulatedDelay    time.Duration
	OrdersDelay       time.Duration
	StrictTransitions bool
	SeedCatalog       bool

	// JanitorInterval is how often sessions idle longer than SessionIdleTimeout
	// are evicted from memory.
	JanitorInterval    time.Duration
	SessionIdleTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	redisPoolSize, err := strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10"))
	if err != nil || redisPoolSize <= 0 {
		return nil, errors.New("invalid redis pool size")
	}

	redisMinIdle, err := strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "5"))
	if err != nil || redisMinIdle < 0 {
		return nil, errors.New("invalid redis min idle conns")
	}

	redisDialTimeout, err := time.ParseDuration(getEnv("REDIS_DIAL_TIMEOUT", "5s"))
	if err != nil || redisDialTimeout <= 0 {
		return nil, errors.New("invalid redis dial timeout")
	}

	redisReadTimeout, err := time.ParseDuration(getEnv("REDIS_READ_TIMEOUT", "3s"))
	if err != nil {
		return nil, errors.New("invalid redis read timeout")
	}

	redisWriteTimeout, err := time.ParseDuration(getEnv("REDIS_WRITE_TIMEOUT", "3s"))
	if err != nil {
		return nil, errors.New("invalid redis write timeout")
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "72h"))
	if err != nil {
		return nil, errors.New("invalid session ttl")
	}

	delay, err := time.ParseDuration(getEnv("RENTAL_SIMULATED_DELAY", "1s"))
	if err != nil {
		return nil, errors.New("invalid simulated delay")
	}

	ordersDelay, err := time.ParseDuration(getEnv("RENTAL_ORDERS_DELAY", "500ms"))
	if err != nil {
		return nil, errors.New("invalid orders delay")
	}

	janitorInterval, err := time.ParseDuration(getEnv("SESSION_JANITOR_INTERVAL", "5m"))
	if err != nil || janitorInterval <= 0 {
		return nil, errors.New("invalid session janitor interval")
	}

	idleTimeout, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil || idleTimeout <= 0 {
		return nil, errors.New("invalid session idle timeout")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "JAB Rental API"),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			Environment:             getEnv("APP_ENV", "development"),
			AppDeploymentUrl:        getEnv("APP_DEPLOYMENT_URL", "http://localhost:8080"),
			AppEmailVerificationKey: getEnv("APP_EMAIL_VERIFICATION_KEY", ""),
			AdminApiKey:             getEnv("ADMIN_API_KEY", ""),
			AllowOrigins:            []string{getEnv("CORS_ALLOW_ORIGIN", "http://localhost:3000")},
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "jab_rental"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET", ""),
			SessionTTL: sessionTTL,
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", "JAB Rental"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			PoolSize:      redisPoolSize,
			MinIdleConns:  redisMinIdle,
			DialTimeout:   redisDialTimeout,
			ReadTimeout:   redisReadTimeout,
			WriteTimeout:  redisWriteTimeout,
		},
		Rental: RentalConfig{
			MockPassword:       getEnv("RENTAL_MOCK_PASSWORD", "password"),
			SimulatedDelay:     delay,
			OrdersDelay:        ordersDelay,
			StrictTransitions:  getEnvBool("ORDER_STRICT_TRANSITIONS", true),
			SeedCatalog:        getEnvBool("SEED_CATALOG", true),
			JanitorInterval:    janitorInterval,
			SessionIdleTimeout: idleTimeout,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	switch len(cfg.App.AppEmailVerificationKey) {
	case 16, 24, 32:
	default:
		return nil, errors.New("app email verification key must be 16, 24 or 32 bytes")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}

	return val
}
