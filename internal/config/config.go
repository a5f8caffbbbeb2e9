package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lexreader/internal/translator"

	"github.com/joho/godotenv"
)

// ServerConfig holds the API server configuration
type ServerConfig struct {
	HTTP       HTTPConfig
	Database   DatabaseConfig
	Translator translator.Config
}

// HTTPConfig holds listener and API settings
type HTTPConfig struct {
	Addr            string
	BasePath        string
	APIKey          string
	AllowedOrigins  []string
	MaxUploadSize   int64
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// ClientConfig holds the settings of reading clients talking to the API
type ClientConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// BotConfig holds the Telegram reading bot configuration
type BotConfig struct {
	BotToken    string
	BotPassword string
	Client      ClientConfig
}

// LoadServer reads the API server configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	maxUpload, err := getInt64("MAX_UPLOAD_SIZE", 10<<20)
	if err != nil {
		return nil, err
	}
	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	translateTimeout, err := getDuration("TRANSLATOR_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getInt64("TRANSLATOR_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			BasePath:        getEnv("API_BASE_PATH", "/api"),
			APIKey:          os.Getenv("API_KEY"),
			AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			MaxUploadSize:   maxUpload,
			ShutdownTimeout: shutdown,
		},
		Database: loadDatabase(),
		Translator: translator.Config{
			Provider:  getEnv("TRANSLATOR_PROVIDER", translator.ProviderYoudao),
			Timeout:   translateTimeout,
			RateLimit: int(rateLimit),
			Youdao: translator.YoudaoConfig{
				AppKey:    os.Getenv("YOUDAO_APP_KEY"),
				AppSecret: os.Getenv("YOUDAO_APP_SECRET"),
				URL:       getEnv("YOUDAO_URL", translator.DefaultYoudaoURL),
				From:      getEnv("YOUDAO_FROM", "en"),
				To:        getEnv("YOUDAO_TO", "zh-CHS"),
			},
			OpenAI: translator.OpenAIConfig{
				APIKey:         os.Getenv("OPENAI_API_KEY"),
				BaseURL:        os.Getenv("OPENAI_BASE_URL"),
				Model:          os.Getenv("OPENAI_MODEL"),
				TargetLanguage: getEnv("TRANSLATION_TARGET_LANGUAGE", "Simplified Chinese"),
			},
		},
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.HTTP.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	return cfg, nil
}

// LoadClient reads the API client configuration from environment variables
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	timeout, err := getDuration("LEXREADER_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		APIURL:  strings.TrimRight(getEnv("LEXREADER_API_URL", "http://localhost:8080/api"), "/"),
		APIKey:  getEnv("LEXREADER_API_KEY", os.Getenv("API_KEY")),
		Timeout: timeout,
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("LEXREADER_API_URL is required")
	}

	return cfg, nil
}

// LoadBot reads the Telegram bot configuration from environment variables
func LoadBot() (*BotConfig, error) {
	client, err := LoadClient()
	if err != nil {
		return nil, err
	}

	cfg := &BotConfig{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Client:      *client,
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}

	return cfg, nil
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", "lexreader"),
		User:     getEnv("DB_USER", "lexreader"),
		Password: os.Getenv("DB_PASSWORD"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// DSN returns PostgreSQL connection string
func (c *ServerConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
