package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StoragePgsql  = "pgsql"
	StorageMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	LogLevel       string
	StorageDriver  string
	MigrationsPath string
	MemorySeedFile string

	// Approval engine
	OverdueThresholdDays int
	OverdueSweepCron     string

	// Notifications
	NotifyWorkers     int
	NotifyQueueSize   int
	NATSURL           string
	NATSSubjectPrefix string

	// HTTP
	DecisionRateLimit string
	CORSOrigins       []string
	PosthogAPIKey     string
	AdminRoles        []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StoragePgsql)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("MEMORY_SEED_FILE", "")
	v.SetDefault("OVERDUE_THRESHOLD_DAYS", 3)
	v.SetDefault("OVERDUE_SWEEP_CRON", "0 * * * *")
	v.SetDefault("NOTIFY_WORKERS", 4)
	v.SetDefault("NOTIFY_QUEUE_SIZE", 256)
	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_SUBJECT_PREFIX", "notifications.expense")
	v.SetDefault("DECISION_RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("ADMIN_ROLES", "admin")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		LogLevel:             strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageDriver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		MemorySeedFile:       v.GetString("MEMORY_SEED_FILE"),
		OverdueThresholdDays: v.GetInt("OVERDUE_THRESHOLD_DAYS"),
		OverdueSweepCron:     v.GetString("OVERDUE_SWEEP_CRON"),
		NotifyWorkers:        v.GetInt("NOTIFY_WORKERS"),
		NotifyQueueSize:      v.GetInt("NOTIFY_QUEUE_SIZE"),
		NATSURL:              v.GetString("NATS_URL"),
		NATSSubjectPrefix:    v.GetString("NATS_SUBJECT_PREFIX"),
		DecisionRateLimit:    v.GetString("DECISION_RATE_LIMIT"),
		CORSOrigins:          splitList(v.GetString("CORS_ORIGINS")),
		PosthogAPIKey:        v.GetString("POSTHOG_API_KEY"),
		AdminRoles:           splitList(v.GetString("ADMIN_ROLES")),
	}

	if cfg.StorageDriver == StoragePgsql && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.OverdueThresholdDays <= 0 {
		log.Printf("Warning: Invalid OVERDUE_THRESHOLD_DAYS (%d). Defaulting to 3.\n", cfg.OverdueThresholdDays)
		cfg.OverdueThresholdDays = 3
	}

	return cfg, nil
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
