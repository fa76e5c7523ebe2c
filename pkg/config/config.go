package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// DefaultJWTSecret is only acceptable outside production
const DefaultJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	Storage                 string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	JWTTTL                  time.Duration
	FirebaseCredentialsPath string
}

// Load reads the configuration from the environment, after applying a .env file if present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "72h"))
	if err != nil || ttl <= 0 {
		log.Printf("Invalid JWT_TTL, falling back to 72h: %v", err)
		ttl = 72 * time.Hour
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		Storage:                 getEnv("STORAGE", StorageMongo),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "petsocial"),
		JWTSecret:               getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:                  ttl,
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
