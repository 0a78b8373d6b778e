package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppCfg struct {
	Env          string        `yaml:"env"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type JWTCfg struct {
	AccessSecret     string `yaml:"accessSecret"`
	RefreshSecret    string `yaml:"refreshSecret"`
	AccessTTLMinutes int    `yaml:"accessTTLMinutes"`
	RefreshTTLDays   int    `yaml:"refreshTTLDays"`
}

type MongoCfg struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type RedisCfg struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type BrevoCfg struct {
	APIKey    string `yaml:"apiKey"`
	FromEmail string `yaml:"fromEmail"`
	FromName  string `yaml:"fromName"`
}

type S3Cfg struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Folder string `yaml:"folder"`
}

type OwnerCfg struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SecurityCfg struct {
	OtpTTLMinutes               int `yaml:"otpTTLMinutes"`
	OtpRateLimitPerEmailPerHour int `yaml:"otpRateLimitPerEmailPerHour"`
	PasswordHashCost            int `yaml:"passwordHashCost"`
}

type Config struct {
	App      AppCfg      `yaml:"app"`
	JWT      JWTCfg      `yaml:"jwt"`
	Mongo    MongoCfg    `yaml:"mongo"`
	Redis    RedisCfg    `yaml:"redis"`
	Brevo    BrevoCfg    `yaml:"brevo"`
	S3       S3Cfg       `yaml:"s3"`
	Owner    OwnerCfg    `yaml:"owner"`
	Security SecurityCfg `yaml:"security"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}
	overrideInt := func(env string, apply func(int)) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				apply(n)
			}
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	overrideInt("APP_PORT", func(n int) { cfg.App.Port = n })
	override("ACCESS_JWT_SECRET", func(v string) { cfg.JWT.AccessSecret = v })
	override("REFRESH_JWT_SECRET", func(v string) { cfg.JWT.RefreshSecret = v })
	overrideInt("JWT_ACCESS_TTL_MINUTES", func(n int) { cfg.JWT.AccessTTLMinutes = n })
	overrideInt("JWT_REFRESH_TTL_DAYS", func(n int) { cfg.JWT.RefreshTTLDays = n })
	override("MONGO_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	overrideInt("REDIS_DB", func(n int) { cfg.Redis.DB = n })
	override("BREVO_API_KEY", func(v string) { cfg.Brevo.APIKey = v })
	override("BREVO_FROM_EMAIL", func(v string) { cfg.Brevo.FromEmail = v })
	override("BREVO_FROM_NAME", func(v string) { cfg.Brevo.FromName = v })
	override("AWS_REGION", func(v string) { cfg.S3.Region = v })
	override("S3_BUCKET", func(v string) { cfg.S3.Bucket = v })
	override("S3_FOLDER", func(v string) { cfg.S3.Folder = v })
	override("OWNER_NAME", func(v string) { cfg.Owner.Name = v })
	override("OWNER_EMAIL", func(v string) { cfg.Owner.Email = v })
	override("OWNER_PASSWORD", func(v string) { cfg.Owner.Password = v })
	overrideInt("OTP_TTL_MINUTES", func(n int) { cfg.Security.OtpTTLMinutes = n })
	overrideInt("OTP_RATE_LIMIT_PER_EMAIL_PER_HOUR", func(n int) { cfg.Security.OtpRateLimitPerEmailPerHour = n })
	overrideInt("PASSWORD_HASH_COST", func(n int) { cfg.Security.PasswordHashCost = n })

	applyDefaults(cfg)

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("ACCESS_JWT_SECRET and REFRESH_JWT_SECRET are required")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.Owner.Email == "" || cfg.Owner.Password == "" {
		return nil, errors.New("OWNER_EMAIL and OWNER_PASSWORD are required")
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.App.ReadTimeout == 0 {
		cfg.App.ReadTimeout = 15 * time.Second
	}
	if cfg.App.WriteTimeout == 0 {
		cfg.App.WriteTimeout = 15 * time.Second
	}
	if cfg.App.IdleTimeout == 0 {
		cfg.App.IdleTimeout = 60 * time.Second
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.JWT.RefreshTTLDays == 0 {
		cfg.JWT.RefreshTTLDays = 7
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "slicestack"
	}
	if cfg.Mongo.ConnectTimeout == 0 {
		cfg.Mongo.ConnectTimeout = 15 * time.Second
	}
	if cfg.Redis.ConnectTimeout == 0 {
		cfg.Redis.ConnectTimeout = 5 * time.Second
	}
	if cfg.S3.Folder == "" {
		cfg.S3.Folder = "pizza_images"
	}
	if cfg.Security.OtpTTLMinutes == 0 {
		cfg.Security.OtpTTLMinutes = 10
	}
	if cfg.Security.OtpRateLimitPerEmailPerHour == 0 {
		cfg.Security.OtpRateLimitPerEmailPerHour = 5
	}
	if cfg.Security.PasswordHashCost == 0 {
		cfg.Security.PasswordHashCost = 10
	}
}
