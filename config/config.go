package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Identity provider backends.
const (
	IdentityFirebase = "firebase"
	IdentityLocal    = "local"
)

// Document store backends.
const (
	DocumentFirestore = "firestore"
	DocumentPostgres  = "postgres"
	DocumentSQLite    = "sqlite"
	DocumentRedis     = "redis"
	DocumentDynamoDB  = "dynamodb"
	DocumentMemory    = "memory"
)

type Config struct {
	AppPort         string
	AppMode         string
	LogMode         string
	ProviderTimeout time.Duration
	CORSOrigins     []string

	IdentityBackend string
	DocumentBackend string

	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseDatabaseURL     string
	FirebaseWebAPIKey       string
	FirebaseAuthEmulator    string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBPath     string

	JWTSecret    string
	JWTExpiryMin int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	AWSRegion        string
	AWSAccessKey     string
	AWSSecretKey     string
	DynamoDBTable    string
	DynamoDBEndpoint string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:         getEnv("PORT", "3000"),
		AppMode:         getEnv("APP_MODE", "debug"),
		LogMode:         getEnv("LOG_MODE", "development"),
		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 15*time.Second),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),

		IdentityBackend: getEnv("IDENTITY_BACKEND", IdentityFirebase),
		DocumentBackend: getEnv("DOCUMENT_BACKEND", DocumentFirestore),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		FirebaseDatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
		FirebaseWebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
		FirebaseAuthEmulator:    getEnv("FIREBASE_AUTH_EMULATOR_HOST", ""),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "textkeeper"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBPath:     getEnv("DB_PATH", "textkeeper.db"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", 60),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKey:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoDBTable:    getEnv("DYNAMODB_TABLE", "textkeeper"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
	}
}

// UsesDatabase reports whether any configured backend needs a gorm connection.
func (c *Config) UsesDatabase() bool {
	return c.IdentityBackend == IdentityLocal ||
		c.DocumentBackend == DocumentPostgres ||
		c.DocumentBackend == DocumentSQLite
}

// UsesFirebase reports whether any configured backend needs a Firebase app.
func (c *Config) UsesFirebase() bool {
	return c.IdentityBackend == IdentityFirebase || c.DocumentBackend == DocumentFirestore
}

// DatabaseDriver returns the gorm driver. A SQL document backend wins over
// DB_DRIVER so both stores share one connection.
func (c *Config) DatabaseDriver() string {
	switch c.DocumentBackend {
	case DocumentPostgres, DocumentSQLite:
		return c.DocumentBackend
	}
	return c.DBDriver
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
