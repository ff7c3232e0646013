package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`

	DBDriver string `json:"db_driver"`
	DBHost   string `json:"dbhost"`
	DBPort   uint16 `json:"dbport"`
	DBName   string `json:"dbname"`
	DBUSER   string `json:"dbuser"`
	DBPass   string `json:"dbpass"`

	// StoreBackend is "sql" (default) or "firestore".
	StoreBackend     string `json:"store_backend"`
	FirestoreProject string `json:"firestore_project"`
	// ChangeFeed is "local" (default), "redis" or "kafka".
	ChangeFeed   string   `json:"change_feed"`
	KafkaBrokers []string `json:"kafka_brokers"`
	KafkaTopic   string   `json:"kafka_topic"`

	S3Bucket string `json:"s3_bucket"`
}

var config *Config
var once sync.Once

// LoadConfig reads .env (when present) and the environment once and returns
// the shared Config.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		config = &Config{
			AppName:          getEnvDefault("APPNAME", "dentara-clinic"),
			AppEnv:           os.Getenv("APPENV"),
			AppPort:          uint16(appPort),
			GinMode:          os.Getenv("GINMODE"),
			DBDriver:         getEnvDefault("DB_DRIVER", "mysql"),
			DBHost:           os.Getenv("DBHOST"),
			DBPort:           uint16(dbPort),
			DBName:           os.Getenv("DBNAME"),
			DBUSER:           os.Getenv("DBUSER"),
			DBPass:           os.Getenv("DBPASS"),
			StoreBackend:     getEnvDefault("STORE_BACKEND", "sql"),
			FirestoreProject: os.Getenv("FIRESTORE_PROJECT"),
			ChangeFeed:       getEnvDefault("CHANGE_FEED", "local"),
			KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
			KafkaTopic:       getEnvDefault("KAFKA_TOPIC", "dentara-changes"),
			S3Bucket:         os.Getenv("S3_BUCKET"),
		}
		if config.AppPort == 0 {
			config.AppPort = 8080
		}
	})
	return config
}

// ResetConfigForTest drops the cached Config so the next LoadConfig re-reads
// the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

func getEnvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsTest reports whether APPENV selects the test environment.
func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

// ConnectDatabase opens the SQL database. APPENV=test uses a private
// in-memory SQLite database instead of the configured server.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	if cfg.IsTest() {
		dsn := fmt.Sprintf("file:dentara_%d?mode=memory&cache=shared", time.Now().UnixNano())
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName)
		dialector = postgres.Open(dsn)
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

// ConnectFirestore opens a Firestore client for FIRESTORE_PROJECT.
func ConnectFirestore(ctx context.Context) (*firestore.Client, error) {
	cfg := LoadConfig()
	if cfg.FirestoreProject == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT is not set")
	}
	client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
	if err != nil {
		return nil, fmt.Errorf("while creating firestore client: %w", err)
	}
	return client, nil
}

// NewS3Client builds an S3 client from the default AWS configuration chain.
// Path-style addressing keeps S3-compatible stores such as MinIO working.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return s3.New(s3.Options{
		Region:       awsCfg.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		BaseEndpoint: awsCfg.BaseEndpoint,
		UsePathStyle: true,
	}), nil
}
