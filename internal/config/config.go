package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver       string `yaml:"db_driver"`
	DBHost         string `yaml:"db_host"`
	DBPort         string `yaml:"db_port"`
	DBUser         string `yaml:"db_user"`
	DBPassword     string `yaml:"db_password"`
	DBName         string `yaml:"db_name"`
	DBPath         string `yaml:"db_path"`
	DBMaxOpenConns int    `yaml:"db_max_open_conns"`
	DBMaxIdleConns int    `yaml:"db_max_idle_conns"`
	SessionStore   string `yaml:"session_store"`
	RedisHost      string `yaml:"redis_host"`
	RedisPort      string `yaml:"redis_port"`
	SessionSecret  string `yaml:"session_secret"`
	GinMode        string `yaml:"gin_mode"`
	Port           string `yaml:"port"`
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	AuditSchedule  string `yaml:"audit_schedule"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`

	// CORSAllowedOrigins lists the browser origins allowed to send
	// credentialed requests. Empty disables CORS handling.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// Load reads configuration from the environment. When path is non-empty the
// YAML file supplies the defaults and environment variables still win.
func Load(path string) (*Config, error) {
	defaults := Config{
		DBDriver:       "mysql",
		DBHost:         "localhost",
		DBPort:         "3306",
		DBUser:         "questuser",
		DBPassword:     "questpassword",
		DBName:         "quest_tracker",
		DBPath:         "quest_tracker.db",
		DBMaxOpenConns: 25,
		DBMaxIdleConns: 5,
		SessionStore:   "cookie",
		RedisHost:      "localhost",
		RedisPort:      "6379",
		SessionSecret:  "default-secret-key-change-me",
		GinMode:        "debug",
		Port:           "5000",
		AuditSchedule:  "@every 1h",
		LogLevel:       "info",
		LogFormat:      "json",

		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &defaults); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", defaults.DBDriver),
		DBHost:         getEnv("DB_HOST", defaults.DBHost),
		DBPort:         getEnv("DB_PORT", defaults.DBPort),
		DBUser:         getEnv("DB_USER", defaults.DBUser),
		DBPassword:     getEnv("DB_PASSWORD", defaults.DBPassword),
		DBName:         getEnv("DB_NAME", defaults.DBName),
		DBPath:         getEnv("DB_PATH", defaults.DBPath),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", defaults.DBMaxOpenConns),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", defaults.DBMaxIdleConns),
		SessionStore:   getEnv("SESSION_STORE", defaults.SessionStore),
		RedisHost:      getEnv("REDIS_HOST", defaults.RedisHost),
		RedisPort:      getEnv("REDIS_PORT", defaults.RedisPort),
		SessionSecret:  getEnv("SESSION_SECRET", defaults.SessionSecret),
		GinMode:        getEnv("GIN_MODE", defaults.GinMode),
		Port:           getEnv("PORT", defaults.Port),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", defaults.OpenAIAPIKey),
		AuditSchedule:  getEnv("AUDIT_SCHEDULE", defaults.AuditSchedule),
		LogLevel:       getEnv("LOG_LEVEL", defaults.LogLevel),
		LogFormat:      getEnv("LOG_FORMAT", defaults.LogFormat),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaults.CORSAllowedOrigins),
	}, nil
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
