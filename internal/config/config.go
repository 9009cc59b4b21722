package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	JWT        JWTConfig
	WhatsApp   WhatsAppConfig
	Encryption EncryptionConfig
	Redis      RedisConfig
	Mail       MailConfig
	RateLimit  RateLimitConfig
	Sync       SyncConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	FrontendURL    string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
	Issuer    string
}

// WhatsAppConfig holds Graph API configuration
type WhatsAppConfig struct {
	BaseURL   string
	Version   string
	PageSize  int
	Timeout   time.Duration
	AppID     string
	AppSecret string
}

// EncryptionConfig holds the key used to seal stored configuration values
type EncryptionConfig struct {
	Key string
}

// RedisConfig holds cache configuration; an empty Addr disables caching
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// MailConfig selects and configures the outgoing mail provider
type MailConfig struct {
	Provider     string
	From         string
	FromName     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SendGridKey  string
}

// RateLimitConfig holds request budgets per window
type RateLimitConfig struct {
	Window       time.Duration
	General      int
	Auth         int
	TrustProxies bool
}

// SyncConfig controls the background template sync; zero Interval disables it
type SyncConfig struct {
	Interval time.Duration
}

// legacyEnv maps config keys to environment names used by existing deployments
var legacyEnv = map[string][]string{
	"server.port":        {"SERVER_PORT", "PORT"},
	"server.frontendURL": {"SERVER_FRONTENDURL", "FRONTEND_URL"},
	"mongodb.uri":        {"MONGODB_URI"},
	"jwt.secret":         {"JWT_SECRET"},
	"encryption.key":     {"ENCRYPTION_KEY", "CONFIG_ENCRYPTION_KEY"},
	"whatsapp.appID":     {"WHATSAPP_APPID", "FACEBOOK_APP_ID"},
	"whatsapp.appSecret": {"WHATSAPP_APPSECRET", "FACEBOOK_APP_SECRET"},
	"mail.sendGridKey":   {"MAIL_SENDGRIDKEY", "SENDGRID_API_KEY"},
}

// Load loads configuration from an optional .env file, an optional
// config.yaml and environment variables, in increasing precedence.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Server.Mode == "debug" {
		return nil
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret (JWT_SECRET) is required")
	}
	if c.Encryption.Key == "" {
		return fmt.Errorf("config: encryption.key (CONFIG_ENCRYPTION_KEY) is required")
	}
	switch c.Mail.Provider {
	case "log", "smtp", "sendgrid":
	default:
		return fmt.Errorf("config: unknown mail.provider %q", c.Mail.Provider)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 60*time.Second)
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("server.frontendURL", "http://localhost:3000")
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "whatsapp_campaigns")
	v.SetDefault("mongodb.timeout", 10*time.Second)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiresIn", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "whatsapp-backend")
	v.SetDefault("whatsapp.baseURL", "https://graph.facebook.com")
	v.SetDefault("whatsapp.version", "v24.0")
	v.SetDefault("whatsapp.pageSize", 100)
	v.SetDefault("whatsapp.timeout", 30*time.Second)
	v.SetDefault("whatsapp.appID", "")
	v.SetDefault("whatsapp.appSecret", "")
	v.SetDefault("encryption.key", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "noreply@localhost")
	v.SetDefault("mail.fromName", "WhatsApp Campaigns")
	v.SetDefault("mail.smtpHost", "localhost")
	v.SetDefault("mail.smtpPort", 587)
	v.SetDefault("mail.smtpUsername", "")
	v.SetDefault("mail.smtpPassword", "")
	v.SetDefault("mail.sendGridKey", "")
	v.SetDefault("rateLimit.window", 15*time.Minute)
	v.SetDefault("rateLimit.general", 200)
	v.SetDefault("rateLimit.auth", 50)
	v.SetDefault("rateLimit.trustProxies", false)
	v.SetDefault("sync.interval", time.Duration(0))
	v.SetDefault("logLevel", "info")
}
