package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	defaultConfigPath = "config/config.yaml"
)

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	DryRun       bool   `yaml:"dry_run"`
}

type StorageConfig struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	BaseEndpoint  string `yaml:"base_endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// Enabled: хранилище аватаров включено, только если задан bucket.
func (s StorageConfig) Enabled() bool { return s.Bucket != "" }

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port       int    `yaml:"port"`
		Mode       string `yaml:"mode"`
		CORSOrigin string `yaml:"cors_origin"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret  string `yaml:"jwt_secret"`
		CookieName string `yaml:"cookie_name"`
		// RequireOTPForExistingUsers закрывает вход по verify-otp без кода
		// для уже зарегистрированных email. По умолчанию выключено.
		RequireOTPForExistingUsers bool `yaml:"require_otp_for_existing_users"`
	} `yaml:"auth"`
	Google struct {
		ClientID string `yaml:"client_id"`
	} `yaml:"google"`
	Email    EmailConfig    `yaml:"email"`
	Storage  StorageConfig  `yaml:"storage"`
	Telegram TelegramConfig `yaml:"telegram"`
	PDF      struct {
		FontPath string `yaml:"font_path"`
	} `yaml:"pdf"`
}

// IsProduction включает Secure-флаг у cookie.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, ModeProduction)
}

// LoadConfig читает конфиг по CONFIG_PATH (или config/config.yaml) и падает при ошибке.
func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := Load(path)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Load decodes the yaml file, applies defaults and environment overrides and
// validates the result. A missing file is allowed: everything can come from env.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.Google.ClientID = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.SMTPPassword = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Mode == "" {
		c.Server.Mode = ModeDevelopment
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "token"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret (or JWT_SECRET) is required")
	}
	switch c.Database.Driver {
	case "postgres", "pgx":
		if c.Database.DSN == "" {
			return errors.New("database.url (or DATABASE_URL) is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	// dry-run пишет коды в лог: в production только настоящий SMTP
	if c.IsProduction() && (c.Email.DryRun || strings.TrimSpace(c.Email.SMTPHost) == "") {
		return errors.New("email.smtp_host is required and email.dry_run must be off in production")
	}
	return nil
}
