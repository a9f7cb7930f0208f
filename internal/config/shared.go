package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Store struct {
		// Provider selects the backing table store: "local", "s3" or "database"
		Provider        string `mapstructure:"provider"`
		Sheet           string `mapstructure:"sheet"`
		CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
		LocalPath       string `mapstructure:"local_path"`

		// S3 / B2
		Bucket   string `mapstructure:"bucket"`
		Prefix   string `mapstructure:"prefix"`
		KeyID    string `mapstructure:"key_id"`
		AppKey   string `mapstructure:"app_key"`
		Endpoint string `mapstructure:"endpoint"`
		Region   string `mapstructure:"region"`
	} `mapstructure:"store"`
	Database struct {
		Driver   string `mapstructure:"driver"`
		Path     string `mapstructure:"path"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Schedule struct {
		// StatusMatch is "lenient" (substring) or "strict" (exact label)
		StatusMatch      string `mapstructure:"status_match"`
		RecurringEndDate string `mapstructure:"recurring_end_date"`
		VocabularyFile   string `mapstructure:"vocabulary_file"`
	} `mapstructure:"schedule"`
	Admin struct {
		Password        string `mapstructure:"password"`
		EditorURL       string `mapstructure:"editor_url"`
		TokenSecret     string `mapstructure:"token_secret"`
		TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
	} `mapstructure:"admin"`
}

func Load() *Config {
	viper.SetEnvPrefix("BOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.log_level")

	// Store
	viper.BindEnv("store.provider")
	viper.BindEnv("store.sheet")
	viper.BindEnv("store.cache_ttl_seconds")
	viper.BindEnv("store.local_path")
	viper.BindEnv("store.bucket")
	viper.BindEnv("store.prefix")
	viper.BindEnv("store.key_id")
	viper.BindEnv("store.app_key")
	viper.BindEnv("store.endpoint")
	viper.BindEnv("store.region")

	// Database
	viper.BindEnv("database.driver")
	viper.BindEnv("database.path")
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	// Schedule
	viper.BindEnv("schedule.status_match")
	viper.BindEnv("schedule.recurring_end_date")
	viper.BindEnv("schedule.vocabulary_file")

	// Admin
	viper.BindEnv("admin.password")
	viper.BindEnv("admin.editor_url")
	viper.BindEnv("admin.token_secret")
	viper.BindEnv("admin.token_ttl_minutes")

	// Defaults
	viper.SetDefault("server.port", ":8081")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.log_level", "error")

	viper.SetDefault("store.provider", "local")
	viper.SetDefault("store.sheet", "Marketing_Schedule")
	viper.SetDefault("store.cache_ttl_seconds", 600) // 10 minutes
	viper.SetDefault("store.local_path", "./data")
	viper.SetDefault("store.region", "us-west-004")

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "board.db")
	viper.SetDefault("database.port", "5432")

	viper.SetDefault("schedule.status_match", "lenient")
	viper.SetDefault("schedule.recurring_end_date", "2026-12-31")

	viper.SetDefault("admin.token_ttl_minutes", 30)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Critical: %v", err)
	}

	return &cfg
}
