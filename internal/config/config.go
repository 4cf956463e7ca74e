// Package config carga la configuración del servicio desde el entorno (y un .env opcional).
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	// DBDSN vacío => store in-memory.
	DBDSN         string
	DBAutoMigrate bool

	LogLevel  string
	LogFormat string
	AppName   string

	// JWTSecret vacío => modo dev (X-Debug-User-ID).
	JWTSecret string
	JWTTTL    time.Duration

	Recommendations RecommendationsConfig

	// RedisAddr vacío => notificaciones solo a log.
	RedisAddr string

	Uploads UploadsConfig

	RateLimitPerMinute int
}

type RecommendationsConfig struct {
	AlwaysRegenerate bool
	BaseURL          string
	APIKey           string
	Model            string
	Timeout          time.Duration
}

type UploadsConfig struct {
	Driver    string // local | s3
	Dir       string
	PublicURL string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "pet-social")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RECOMMENDATIONS_ALWAYS_REGENERATE", false)
	v.SetDefault("RECOMMENDER_MODEL", "gpt-4o-mini")
	v.SetDefault("RECOMMENDER_TIMEOUT", "20s")
	v.SetDefault("UPLOAD_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_PUBLIC_URL", "/uploads")
	v.SetDefault("S3_REGION", "auto")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
}

// Load lee .env (si existe) y luego el entorno. El entorno siempre gana.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:          strings.TrimSpace(v.GetString("PORT")),
		DBDSN:         strings.TrimSpace(v.GetString("DB_DSN")),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		AppName:       v.GetString("APP_NAME"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        v.GetDuration("JWT_TTL"),
		Recommendations: RecommendationsConfig{
			AlwaysRegenerate: v.GetBool("RECOMMENDATIONS_ALWAYS_REGENERATE"),
			BaseURL:          strings.TrimSpace(v.GetString("RECOMMENDER_BASE_URL")),
			APIKey:           strings.TrimSpace(v.GetString("RECOMMENDER_API_KEY")),
			Model:            v.GetString("RECOMMENDER_MODEL"),
			Timeout:          v.GetDuration("RECOMMENDER_TIMEOUT"),
		},
		RedisAddr: strings.TrimSpace(v.GetString("REDIS_ADDR")),
		Uploads: UploadsConfig{
			Driver:            strings.ToLower(strings.TrimSpace(v.GetString("UPLOAD_DRIVER"))),
			Dir:               v.GetString("UPLOAD_DIR"),
			PublicURL:         strings.TrimRight(v.GetString("UPLOAD_PUBLIC_URL"), "/"),
			S3Bucket:          v.GetString("S3_BUCKET"),
			S3Region:          v.GetString("S3_REGION"),
			S3Endpoint:        v.GetString("S3_ENDPOINT"),
			S3AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			S3SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		},
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: PORT is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	switch c.Uploads.Driver {
	case "local":
	case "s3":
		if strings.TrimSpace(c.Uploads.S3Bucket) == "" {
			return errors.New("config: S3_BUCKET is required when UPLOAD_DRIVER=s3")
		}
	default:
		return errors.New("config: UPLOAD_DRIVER must be local or s3")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("config: RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// DevAuth indica si el servicio acepta X-Debug-User-ID en lugar de tokens.
func (c Config) DevAuth() bool { return strings.TrimSpace(c.JWTSecret) == "" }
