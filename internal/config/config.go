package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	Auth      AuthConfig      `yaml:"auth"`
	SMS       SMSConfig       `yaml:"sms"`
	Payment   PaymentConfig   `yaml:"payment"`
	Storage   StorageConfig   `yaml:"storage"`
	Email     EmailConfig     `yaml:"email"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"` // "development", "staging" or "production"
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// AdminConfig gates the admin back-office
type AdminConfig struct {
	APIKey        string `yaml:"api_key"`        // shared secret for admin login
	SessionSecret string `yaml:"session_secret"` // HMAC key for admin session tokens
}

// AuthConfig contains customer OTP/session settings
type AuthConfig struct {
	OTPTTLMinutes     int      `yaml:"otp_ttl_minutes"`
	OTPMaxAttempts    int      `yaml:"otp_max_attempts"`
	TestOTPCode       string   `yaml:"test_otp_code"`
	TestPhones        []string `yaml:"test_phones"`
	SessionTTLDays    int      `yaml:"session_ttl_days"`
	SendThrottleSecs  int      `yaml:"send_throttle_seconds"`
}

// SMSConfig selects and configures the SMS provider
type SMSConfig struct {
	Provider    string `yaml:"provider"` // "eskiz" or "log"
	EskizEmail  string `yaml:"eskiz_email"`
	EskizSecret string `yaml:"eskiz_secret"`
	EskizFrom   string `yaml:"eskiz_from"`
	EskizURL    string `yaml:"eskiz_url"`
}

// PaymentConfig contains gateway credentials and mode
type PaymentConfig struct {
	Mode       string `yaml:"mode"` // "staging" simulates success, "production" requires a gateway
	MerchantID string `yaml:"merchant_id"`
	SecretKey  string `yaml:"secret_key"`
}

// StorageConfig contains upload backend settings. Backend selection is
// first-match-wins: blob token, then imagekit key, then local disk.
type StorageConfig struct {
	BlobToken       string `yaml:"blob_token"`
	BlobBaseURL     string `yaml:"blob_base_url"`
	ImageKitKey     string `yaml:"imagekit_key"`
	ImageKitURL     string `yaml:"imagekit_url"`
	UploadDir       string `yaml:"upload_dir"`
	PublicBaseURL   string `yaml:"public_base_url"`
	MaxFileSizeMB   int64  `yaml:"max_file_size_mb"`
	JPEGQuality     int    `yaml:"jpeg_quality"`
}

// EmailConfig contains the optional sendgrid alert settings
type EmailConfig struct {
	SendgridKey string `yaml:"sendgrid_key"`
	From        string `yaml:"from"`
	OrderAlert  string `yaml:"order_alert"` // admin address notified on new orders
}

// RedisConfig contains the optional OTP rate-limiter backend
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron specs for maintenance jobs
type SchedulerConfig struct {
	PurgeExpiredOTPs     string `yaml:"purge_expired_otps"`
	PurgeExpiredSessions string `yaml:"purge_expired_sessions"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("APP_ENV"); val != "" {
		c.Server.Environment = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Admin secrets
	if val := os.Getenv("ADMIN_API_KEY"); val != "" {
		c.Admin.APIKey = val
	}
	if val := os.Getenv("ADMIN_SESSION_SECRET"); val != "" {
		c.Admin.SessionSecret = val
	}

	// SMS provider
	if val := os.Getenv("SMS_PROVIDER"); val != "" {
		c.SMS.Provider = val
	}
	if val := os.Getenv("ESKIZ_EMAIL"); val != "" {
		c.SMS.EskizEmail = val
	}
	if val := os.Getenv("ESKIZ_SECRET"); val != "" {
		c.SMS.EskizSecret = val
	}

	// Payment
	if val := os.Getenv("PAYMENT_MODE"); val != "" {
		c.Payment.Mode = val
	}
	if val := os.Getenv("PAYMENT_MERCHANT_ID"); val != "" {
		c.Payment.MerchantID = val
	}
	if val := os.Getenv("PAYMENT_SECRET_KEY"); val != "" {
		c.Payment.SecretKey = val
	}

	// Storage
	if val := os.Getenv("BLOB_READ_WRITE_TOKEN"); val != "" {
		c.Storage.BlobToken = val
	}
	if val := os.Getenv("IMAGEKIT_PRIVATE_KEY"); val != "" {
		c.Storage.ImageKitKey = val
	}
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendgridKey = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Defaults that do not belong in every config file
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Auth.OTPTTLMinutes == 0 {
		c.Auth.OTPTTLMinutes = 5
	}
	if c.Auth.OTPMaxAttempts == 0 {
		c.Auth.OTPMaxAttempts = 3
	}
	if c.Auth.SessionTTLDays == 0 {
		c.Auth.SessionTTLDays = 30
	}
	if c.Auth.SendThrottleSecs == 0 {
		c.Auth.SendThrottleSecs = 60
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 10
	}
	if c.Storage.JPEGQuality == 0 {
		c.Storage.JPEGQuality = 85
	}
	if c.Payment.Mode == "" {
		c.Payment.Mode = "staging"
	}
	if c.SMS.Provider == "" {
		c.SMS.Provider = "log"
	}
	if c.SMS.EskizURL == "" {
		c.SMS.EskizURL = "https://notify.eskiz.uz/api"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Admin secrets: fail closed, the back-office must never come up open
	if c.Admin.APIKey == "" {
		return fmt.Errorf("admin API key is required")
	}
	if c.Admin.SessionSecret == "" {
		return fmt.Errorf("admin session secret is required")
	}
	if len(c.Admin.SessionSecret) < 32 {
		return fmt.Errorf("admin session secret must be at least 32 characters")
	}

	// SMS: eskiz needs credentials
	if c.SMS.Provider == "eskiz" && (c.SMS.EskizEmail == "" || c.SMS.EskizSecret == "") {
		return fmt.Errorf("eskiz email and secret are required for the eskiz SMS provider")
	}

	// Payment
	if c.Payment.Mode != "staging" && c.Payment.Mode != "production" {
		return fmt.Errorf("invalid payment mode: %s", c.Payment.Mode)
	}

	// Storage: local disk is the fallback backend, its dir must be set
	if c.Storage.BlobToken == "" && c.Storage.ImageKitKey == "" && c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required when no remote storage backend is configured")
	}

	// Scheduler defaults
	if c.Scheduler.PurgeExpiredOTPs == "" {
		c.Scheduler.PurgeExpiredOTPs = "0 15 2 * * *" // 2:15 AM UTC
	}
	if c.Scheduler.PurgeExpiredSessions == "" {
		c.Scheduler.PurgeExpiredSessions = "0 30 2 * * *" // 2:30 AM UTC
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
