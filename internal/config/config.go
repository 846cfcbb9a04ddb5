// Package config reads the server settings from the environment, a .env
// file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Zachkp/resume/internal/contact"
)

type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	LogFormat  string
	DBPath     string
	ResumePath string

	SMTP contact.SMTPConfig

	AdminUsername string
	AdminPassword string
	AdminSecret   string

	VisitorRetention time.Duration
	ContactRate      float64
	ContactBurst     int
}

var keys = map[string]string{
	"port":              "PORT",
	"gin_mode":          "GIN_MODE",
	"log_level":         "LOG_LEVEL",
	"log_format":        "LOG_FORMAT",
	"db_path":           "DB_PATH",
	"resume_path":       "RESUME_PATH",
	"smtp_host":         "SMTP_HOST",
	"smtp_port":         "SMTP_PORT",
	"smtp_user":         "SMTP_USER",
	"smtp_pass":         "SMTP_PASS",
	"to_email":          "TO_EMAIL",
	"admin_username":    "ADMIN_USERNAME",
	"admin_password":    "ADMIN_PASSWORD",
	"admin_secret":      "ADMIN_SECRET",
	"visitor_retention": "VISITOR_RETENTION",
	"contact_rate":      "CONTACT_RATE",
	"contact_burst":     "CONTACT_BURST",
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("db_path", "resume.db")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")
	// 12 months of visitor history.
	v.SetDefault("visitor_retention", "8760h")
	v.SetDefault("contact_rate", 0.05)
	v.SetDefault("contact_burst", 3)
}

// Load reads .env files (if any) into the process environment, then builds
// the config from an optional file at cfgFile plus the environment.
func Load(cfgFile string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}
	return FromViper(v)
}

// FromViper converts resolved settings into a Config.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:       v.GetString("port"),
		GinMode:    v.GetString("gin_mode"),
		LogLevel:   v.GetString("log_level"),
		LogFormat:  v.GetString("log_format"),
		DBPath:     v.GetString("db_path"),
		ResumePath: v.GetString("resume_path"),
		SMTP: contact.SMTPConfig{
			Host: v.GetString("smtp_host"),
			Port: v.GetString("smtp_port"),
			User: v.GetString("smtp_user"),
			Pass: v.GetString("smtp_pass"),
			To:   v.GetString("to_email"),
		},
		AdminUsername:    v.GetString("admin_username"),
		AdminPassword:    v.GetString("admin_password"),
		AdminSecret:      v.GetString("admin_secret"),
		VisitorRetention: v.GetDuration("visitor_retention"),
		ContactRate:      v.GetFloat64("contact_rate"),
		ContactBurst:     v.GetInt("contact_burst"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.VisitorRetention <= 0 {
		return errors.New("visitor retention must be positive")
	}
	if c.ContactBurst < 1 {
		return errors.New("contact burst must be at least 1")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DevAdmin reports whether admin credentials fell back to development
// defaults, and fills them in.
func (c *Config) DevAdmin() bool {
	dev := false
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
		dev = true
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
		dev = true
	}
	return dev
}
