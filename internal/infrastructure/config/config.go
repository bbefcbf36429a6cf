// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by the favorites store
const (
	StoreBackendMemory   = "memory"
	StoreBackendFile     = "file"
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
	StoreBackendMongo    = "mongo"
	StoreBackendS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string

	// Launch source
	LaunchAPIURL          string
	LaunchAPIToken        string
	LaunchAPIClientID     string
	LaunchAPIClientSecret string
	LaunchAPITokenURL     string
	LaunchAPITimeout      time.Duration
	LaunchStaleTime       time.Duration
	LaunchRefreshInterval time.Duration

	// Favorites storage
	StoreBackend string
	FavoritesKey string
	FileStoreDir string
	SQLitePath   string

	// PostgreSQL
	PostgresURI string

	// MongoDB
	MongoURI            string
	MongoDB             string
	MongoUser           string
	MongoPassword       string
	MongoConnectTimeout time.Duration
	MongoMaxPoolSize    int

	// S3-compatible object storage
	S3Endpoint  string
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	staleTime := getEnvAsDuration("LAUNCH_STALE_TIME", 5*time.Minute)

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),

		LaunchAPIURL:          getEnv("LAUNCH_API_URL", "https://api.spacexdata.com/v4/launches"),
		LaunchAPIToken:        getEnv("LAUNCH_API_TOKEN", ""),
		LaunchAPIClientID:     getEnv("LAUNCH_API_CLIENT_ID", ""),
		LaunchAPIClientSecret: getEnv("LAUNCH_API_CLIENT_SECRET", ""),
		LaunchAPITokenURL:     getEnv("LAUNCH_API_TOKEN_URL", ""),
		LaunchAPITimeout:      getEnvAsDuration("LAUNCH_API_TIMEOUT", 30*time.Second),
		LaunchStaleTime:       staleTime,
		LaunchRefreshInterval: getEnvAsDuration("LAUNCH_REFRESH_INTERVAL", staleTime),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendSQLite)),
		FavoritesKey: getEnv("FAVORITES_KEY", "favorites"),
		FileStoreDir: getEnv("FILE_STORE_DIR", "data"),
		SQLitePath:   getEnv("SQLITE_PATH", "launchboard.db"),

		PostgresURI: getEnv("POSTGRES_URI", "postgres://localhost:5432/launchboard?sslmode=disable"),

		MongoURI:            getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:             getEnv("MONGO_DB", "launchboard"),
		MongoUser:           getEnv("MONGO_USER", ""),
		MongoPassword:       getEnv("MONGO_PASSWORD", ""),
		MongoConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		MongoMaxPoolSize:    getEnvAsInt("MONGO_MAX_POOL_SIZE", 0),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Bucket:    getEnv("S3_BUCKET", "launchboard"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3UseSSL:    getEnvAsBool("S3_USE_SSL", true),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("90s", "5m") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
