package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AppConfig holds all environment variables.
type AppConfig struct {
	Port         string
	Environment  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBName       string
	DBPassword   string
	DBSSLMode    string
	SnapshotFile string
	JWTSecret    string
	FrontendURL  string
	WebhookURL   string
}

// Load reads environment variables (and .env if present).
func Load() *AppConfig {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:         os.Getenv("PORT"),
		Environment:  os.Getenv("ENVIRONMENT"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBUser:       os.Getenv("DB_USER"),
		DBName:       os.Getenv("DB_NAME"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBSSLMode:    os.Getenv("DB_SSLMODE"),
		SnapshotFile: os.Getenv("SNAPSHOT_FILE"),
		JWTSecret:    os.Getenv("JWT_SECRET_KEY"),
		FrontendURL:  os.Getenv("FRONTEND_URL"),
		WebhookURL:   os.Getenv("WEBHOOK_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.SnapshotFile == "" {
		cfg.SnapshotFile = "raffle-state.json"
	}
	return cfg
}

// UseDatabase reports whether a postgres connection is configured. Without
// one, the server falls back to the file store and runs without operator auth.
func (c *AppConfig) UseDatabase() bool {
	return c.DBHost != ""
}

// InitDB opens the postgres connection with a detailed gorm logger.
func InitDB(c *AppConfig) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	return db
}

// CORSMiddleware allows the configured frontend origin, or any origin when
// none is configured (local party usage).
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if frontendURL == "" {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		conf.AllowOrigins = []string{frontendURL}
	}
	return cors.New(conf)
}
