package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Provider ProviderConfig
	Redis    RedisConfig
	PDF      PDFConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	PasswordMinLength int
}

// ProviderConfig holds settings for the external quiz-generation provider.
// An empty APIKey means the provider is unconfigured and generation goes
// straight to the local fallback synthesizer.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type RedisConfig struct {
	Address      string
	Password     string
	DB           int
	QuizCacheTTL time.Duration
}

type PDFConfig struct {
	MaxFileSize int64
}

type AdminConfig struct {
	Email                    string
	Password                 string
	MaxQuestionsPerQuiz      int
	EnablePDFUpload          bool
	EnableFallbackGeneration bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Auth: AuthConfig{
			JWTSecret:         viper.GetString("auth.jwt_secret"),
			TokenTTL:          viper.GetDuration("auth.token_ttl") * time.Second,
			PasswordMinLength: viper.GetInt("auth.password_min_length"),
		},
		Provider: ProviderConfig{
			APIKey:  viper.GetString("provider.api_key"),
			BaseURL: viper.GetString("provider.base_url"),
			Model:   viper.GetString("provider.model"),
			Timeout: viper.GetDuration("provider.timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:      viper.GetString("redis.address"),
			Password:     viper.GetString("redis.password"),
			DB:           viper.GetInt("redis.db"),
			QuizCacheTTL: viper.GetDuration("redis.quiz_cache_ttl") * time.Second,
		},
		PDF: PDFConfig{
			MaxFileSize: viper.GetInt64("pdf.max_file_size"),
		},
		Admin: AdminConfig{
			Email:                    viper.GetString("admin.email"),
			Password:                 viper.GetString("admin.password"),
			MaxQuestionsPerQuiz:      viper.GetInt("admin.max_questions_per_quiz"),
			EnablePDFUpload:          viper.GetBool("admin.enable_pdf_upload"),
			EnableFallbackGeneration: viper.GetBool("admin.enable_fallback_generation"),
		},
	}

	// Environment variables take precedence over the config file for the
	// values an operator is most likely to inject at deploy time.
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		config.Provider.APIKey = key
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		config.Admin.Email = email
	}
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		config.Admin.Password = password
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("auth.jwt_secret", "quizcraft-dev-signing-key-change-me")
	viper.SetDefault("auth.token_ttl", 72*60*60)
	viper.SetDefault("auth.password_min_length", 8)
	viper.SetDefault("provider.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("provider.model", "deepseek/deepseek-r1-0528-qwen3-8b:free")
	viper.SetDefault("provider.timeout", 60)
	viper.SetDefault("redis.quiz_cache_ttl", 15*60)
	viper.SetDefault("pdf.max_file_size", 10*1024*1024)
	viper.SetDefault("admin.email", "admin@quizcraft.ai")
	viper.SetDefault("admin.password", "admin123")
	viper.SetDefault("admin.max_questions_per_quiz", 10)
	viper.SetDefault("admin.enable_pdf_upload", true)
	viper.SetDefault("admin.enable_fallback_generation", true)
}
