package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	PublicURL      string   `yaml:"public_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds database configuration.
// Driver is either "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

// StorageConfig selects where uploaded images live.
// Driver is either "local" or "s3".
type StorageConfig struct {
	Driver   string    `yaml:"driver"`
	ImageDir string    `yaml:"image_dir"`
	AWS      AWSConfig `yaml:"aws"`
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region    string `yaml:"region"`
	S3Bucket  string `yaml:"s3_bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible providers
	PathStyle bool   `yaml:"path_style"`
}

// AuthConfig holds authentication configuration.
// Strategy is either "token" (bearer JWT) or "session" (server-side session cookie).
type AuthConfig struct {
	Strategy     string        `yaml:"strategy"`
	Secret       string        `yaml:"secret"`
	TTL          time.Duration `yaml:"ttl"`
	CookieName   string        `yaml:"cookie_name"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file. A missing file is not an error:
// defaults and environment variables are enough to run locally.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
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
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	c.Server.PublicURL = envString("PUBLIC_URL", c.Server.PublicURL)
	c.Database.Driver = envString("DATABASE_DRIVER", c.Database.Driver)
	c.Database.URL = envString("DATABASE_URL", c.Database.URL)
	c.Database.Path = envString("SQLITE_PATH", c.Database.Path)
	c.Storage.Driver = envString("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.ImageDir = envString("IMAGE_DIR", c.Storage.ImageDir)
	c.Storage.AWS.AccessKey = envString("AWS_ACCESS_KEY_ID", c.Storage.AWS.AccessKey)
	c.Storage.AWS.SecretKey = envString("AWS_SECRET_ACCESS_KEY", c.Storage.AWS.SecretKey)
	c.Auth.Strategy = envString("AUTH_STRATEGY", c.Auth.Strategy)
	// each strategy reads its own secret variable
	if c.Auth.Strategy == "session" {
		c.Auth.Secret = envString("SESSION_SECRET", c.Auth.Secret)
	} else {
		c.Auth.Secret = envString("JWT_SECRET", c.Auth.Secret)
	}
	c.Log.Level = envString("LOG_LEVEL", c.Log.Level)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "photoshare.db"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.ImageDir == "" {
		c.Storage.ImageDir = "images"
	}
	if c.Auth.Strategy == "" {
		c.Auth.Strategy = "token"
	}
	if c.Auth.TTL == 0 {
		c.Auth.TTL = 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "photoshare.sid"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports configuration the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.AWS.S3Bucket == "" {
			return fmt.Errorf("storage.aws.s3_bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	switch c.Auth.Strategy {
	case "token", "session":
	default:
		return fmt.Errorf("unsupported auth strategy %q", c.Auth.Strategy)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
