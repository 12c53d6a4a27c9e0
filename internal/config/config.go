package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Auth     AuthConfig     `json:"auth"`
	Stripe   StripeConfig   `json:"stripe"`
	Assets   AssetsConfig   `json:"assets"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type AuthConfig struct {
	JWTSecret       string `json:"jwt_secret"`
	TokenTTLMinutes int    `json:"token_ttl_minutes"`
	CookieName      string `json:"cookie_name"`
	CookieSecure    bool   `json:"cookie_secure"`
}

type StripeConfig struct {
	SecretKey     string `json:"secret_key"`
	WebhookSecret string `json:"webhook_secret"`
	Currency      string `json:"currency"`
	SiteURL       string `json:"site_url"`
}

type AssetsConfig struct {
	Bucket           string `json:"bucket"`
	Region           string `json:"region"`
	Endpoint         string `json:"endpoint"`
	URLTTLSeconds     int    `json:"url_ttl_seconds"`
	PreviewTTLSeconds int    `json:"preview_ttl_seconds"`
}

// LoadConfig reads the JSON config file and overlays secrets from the
// environment (.env is loaded when present). Env values win over file values
// so deployments never need secrets on disk.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	overlayEnv(&config)

	if config.Auth.TokenTTLMinutes == 0 {
		config.Auth.TokenTTLMinutes = 60 * 24
	}
	if config.Auth.CookieName == "" {
		config.Auth.CookieName = "session_token"
	}
	if config.Assets.URLTTLSeconds == 0 {
		config.Assets.URLTTLSeconds = 300
	}
	if config.Assets.PreviewTTLSeconds == 0 {
		config.Assets.PreviewTTLSeconds = 3600
	}
	if config.Stripe.Currency == "" {
		config.Stripe.Currency = "aud"
	}

	return &config, nil
}

func overlayEnv(c *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		c.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		c.Stripe.WebhookSecret = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		c.Stripe.SiteURL = v
	}
	if v := os.Getenv("ASSET_BUCKET"); v != "" {
		c.Assets.Bucket = v
	}
	if v := os.Getenv("AWS_S3_ENDPOINT"); v != "" {
		c.Assets.Endpoint = v
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
