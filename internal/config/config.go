package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database Database `yaml:"database"`
	Server   struct {
		Port                   string `yaml:"port"`
		Mode                   string `yaml:"mode"` // gin mode: debug, release or test
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret       string `yaml:"jwt_secret"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
		AnnotatorRole   string `yaml:"annotator_role"`
	} `yaml:"auth"`
	Images struct {
		Dir string `yaml:"dir"`
	} `yaml:"images"`
	Log Log `yaml:"log"`
}

// Database describes how to reach PostgreSQL. URL wins over the individual fields.
type Database struct {
	URL          string `yaml:"url"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.expandEnv()
	config.setDefaults()

	return config, nil
}

// expandEnv resolves ${VAR} references so secrets can stay out of the file.
func (c *Config) expandEnv() {
	c.Database.URL = os.ExpandEnv(c.Database.URL)
	c.Database.Host = os.ExpandEnv(c.Database.Host)
	c.Database.Port = os.ExpandEnv(c.Database.Port)
	c.Database.User = os.ExpandEnv(c.Database.User)
	c.Database.Password = os.ExpandEnv(c.Database.Password)
	c.Database.Name = os.ExpandEnv(c.Database.Name)
	c.Auth.JWTSecret = os.ExpandEnv(c.Auth.JWTSecret)
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 5
	}

	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "require"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}

	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = 12 * 60
	}
	if c.Auth.AnnotatorRole == "" {
		c.Auth.AnnotatorRole = "annotator"
	}

	if c.Images.Dir == "" {
		c.Images.Dir = "images"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set")
	}
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		return errors.New("database.url or database.host and database.dbname must be set")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("database pool sizes must not be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) exceeds database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	return nil
}

// TokenTTL is the lifetime of an issued session token.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// ShutdownTimeout bounds graceful HTTP shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// DSN returns a lib/pq connection URL.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}
