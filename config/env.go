package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverMemory = "memory"
	StorageDriverFile   = "file"
	StorageDriverRedis  = "redis"
	StorageDriverMySQL  = "mysql"
	StorageDriverGCS    = "gcs"

	LockLocal = "local"
	LockRedis = "redis"
	LockNone  = "none"

	SequenceCollection = "collection"
	SequenceRedis      = "redis"
)

// StoreConfig holds everything needed to open a storage medium and
// build the record store on top of it.
type StoreConfig struct {
	Driver  string
	FileDir string

	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	GCSBucket          string
	GCSPrefix          string
	GCSCredentialsJSON string
	GCSEndpoint        string

	Lock     string
	Sequence string

	AnalyticsLocation *time.Location
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// LoadStoreConfig reads the store configuration from the environment.
// Every value has a default, so an empty environment yields an in-memory store.
func LoadStoreConfig() *StoreConfig {
	cfg := &StoreConfig{
		Driver:  strings.ToLower(stringFromEnv("STORAGE_DRIVER", StorageDriverMemory)),
		FileDir: stringFromEnv("STORAGE_FILE_DIR", "data"),

		RedisAddress:   stringFromEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        intFromEnv("REDIS_DB", 0),
		RedisKeyPrefix: stringFromEnv("REDIS_KEY_PREFIX", "sales:"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     stringFromEnv("DB_HOST", "127.0.0.1"),
		DBPort:     stringFromEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),

		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSPrefix:          stringFromEnv("GCS_PREFIX", "collections/"),
		GCSCredentialsJSON: os.Getenv("GCS_CREDENTIALS_JSON"),
		GCSEndpoint:        os.Getenv("GCS_ENDPOINT"),

		Lock:     strings.ToLower(stringFromEnv("STORAGE_LOCK", LockLocal)),
		Sequence: strings.ToLower(stringFromEnv("SEQUENCE_DRIVER", SequenceCollection)),

		AnalyticsLocation: time.Local,
	}

	if tz := strings.TrimSpace(os.Getenv("ANALYTICS_TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			LogWarn(GetLogger(), "config", "LoadStoreConfig", "ANALYTICS_TIMEZONE", tz, "unknown timezone, using local time")
		} else {
			cfg.AnalyticsLocation = loc
		}
	}
	return cfg
}

func stringFromEnv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
