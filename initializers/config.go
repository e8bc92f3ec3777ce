package initializers

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string        `yaml:"port"`
	GinMode        string        `yaml:"ginMode"`
	DBDriver       string        `yaml:"dbDriver"`
	DatabaseURL    string        `yaml:"databaseUrl"`
	SessionSecret  string        `yaml:"sessionSecret"`
	SessionTTL     time.Duration `yaml:"sessionTtl"`
	CookieSecure   bool          `yaml:"cookieSecure"`
	MaxUploadBytes int64         `yaml:"maxUploadBytes"`

	StorageDriver   string `yaml:"storageDriver"`
	UploadDir       string `yaml:"uploadDir"`
	PublicURLPrefix string `yaml:"publicUrlPrefix"`
	S3Bucket        string `yaml:"s3Bucket"`
	S3PublicBaseURL string `yaml:"s3PublicBaseUrl"`

	AdminUsername string `yaml:"adminUsername"`
	AdminPassword string `yaml:"adminPassword"`

	CORSAllowedOrigins []string      `yaml:"corsAllowedOrigins"`
	OrderWebhookURL    string        `yaml:"orderWebhookUrl"`
	WebhookTimeout     time.Duration `yaml:"webhookTimeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:               "8080",
		GinMode:            "debug",
		DBDriver:           "mysql",
		SessionTTL:         30 * 24 * time.Hour,
		MaxUploadBytes:     5 << 20,
		StorageDriver:      "local",
		UploadDir:          "static/uploads",
		PublicURLPrefix:    "/static/uploads",
		AdminUsername:      "admin",
		CORSAllowedOrigins: []string{"http://localhost:4200"},
		WebhookTimeout:     5 * time.Second,
	}
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// CONFIG_FILE, .env and finally the process environment.
func LoadConfig() (*Config, error) {
	LoadEnv()

	cfg := DefaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.DBDriver, "DB_DRIVER")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.SessionSecret, "SESSION_SECRET")
	setString(&c.StorageDriver, "STORAGE_DRIVER")
	setString(&c.UploadDir, "UPLOAD_DIR")
	setString(&c.PublicURLPrefix, "PUBLIC_URL_PREFIX")
	setString(&c.S3Bucket, "S3_BUCKET")
	setString(&c.S3PublicBaseURL, "S3_PUBLIC_BASE_URL")
	setString(&c.AdminUsername, "ADMIN_USERNAME")
	setString(&c.AdminPassword, "ADMIN_PASSWORD")
	setString(&c.OrderWebhookURL, "ORDER_WEBHOOK_URL")

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		c.CORSAllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSAllowedOrigins = append(c.CORSAllowedOrigins, origin)
			}
		}
	}

	if v, ok := lookup("COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		c.CookieSecure = b
	}
	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if err := setDuration(&c.SessionTTL, "SESSION_TTL"); err != nil {
		return err
	}
	return setDuration(&c.WebhookTimeout, "WEBHOOK_TIMEOUT")
}

func (c *Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
