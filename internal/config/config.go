package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type LoggingConfig struct {
	Level string
}

// RedisConfig is optional; the activity stream and its worker only run when
// Enabled is set.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type ActivityConfig struct {
	Stream        string
	Group         string
	Consumer      string
	ClaimInterval time.Duration
}

// StorageConfig points image URLs at an object store. An empty Endpoint keeps
// the placeholder URLs.
type StorageConfig struct {
	Endpoint        string
	AccessKey       string
	SecretKey       string
	BucketOriginals string
	UseSSL          bool
	Region          string
	URLExpiry       time.Duration
}

type SecurityConfig struct {
	JWTAccessSecret string
	SessionTTL      time.Duration
	PasswordTime    uint32
	PasswordMemory  uint32
	PasswordThreads uint8
}

type GalleryConfig struct {
	ImageCount int
	Seed       int64
}

type JobsConfig struct {
	SessionSweep string
	Digest       string
}

type AppConfig struct {
	Environment      string
	Logging          LoggingConfig
	HTTP             HTTPConfig
	Redis            RedisConfig
	Activity         ActivityConfig
	Storage          StorageConfig
	Security         SecurityConfig
	Gallery          GalleryConfig
	Jobs             JobsConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	// .env is a development convenience; its absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("AIGALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.Environment == "production" && c.Security.JWTAccessSecret == defaultJWTSecret {
		return fmt.Errorf("security.jwtaccesssecret must be set in production")
	}
	if c.Gallery.ImageCount <= 0 {
		return fmt.Errorf("gallery.imagecount must be positive, got %d", c.Gallery.ImageCount)
	}
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("security.sessionttl must be positive")
	}
	return nil
}

const defaultJWTSecret = "aigallery-dev-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("logging.level", "debug")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("activity.stream", "gallery:activity")
	v.SetDefault("activity.group", "gallery-workers")
	v.SetDefault("activity.consumer", "worker-1")
	v.SetDefault("activity.claiminterval", "10s")

	v.SetDefault("storage.bucketoriginals", "aigallery-originals")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.urlexpiry", "1h")

	v.SetDefault("security.jwtaccesssecret", defaultJWTSecret)
	v.SetDefault("security.sessionttl", "24h")
	v.SetDefault("security.passwordtime", 3)
	v.SetDefault("security.passwordmemory", 64*1024)
	v.SetDefault("security.passwordthreads", 2)

	v.SetDefault("gallery.imagecount", 12)
	v.SetDefault("gallery.seed", 0) // 0 draws a fresh seed on every start

	v.SetDefault("jobs.sessionsweep", "0 */1 * * * *")
	v.SetDefault("jobs.digest", "0 0 */1 * * *")
}
