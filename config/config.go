package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string `env:"COPOTO_APP_NAME" envDefault:"copoto"`
	AppEnv       string `env:"COPOTO_APP_ENV" envDefault:"local"`
	HTTPHost     string `env:"COPOTO_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string `env:"COPOTO_HTTP_PORT" envDefault:"8080"`
	HTTPBasePath string `env:"COPOTO_HTTP_BASE_PATH" envDefault:"/api/v1"`

	DBHost     string `env:"COPOTO_DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"COPOTO_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"COPOTO_DB_USER" envDefault:"app"`
	DBPassword string `env:"COPOTO_DB_PASSWORD" envDefault:"app_password"`
	DBName     string `env:"COPOTO_DB_NAME" envDefault:"copoto"`
	DBSSLMode  string `env:"COPOTO_DB_SSLMODE" envDefault:"disable"`

	JWTSecret  string        `env:"COPOTO_JWT_SECRET"`
	AccessTTL  time.Duration `env:"COPOTO_JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"COPOTO_REFRESH_TTL" envDefault:"168h"`

	NATSURL              string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSVerifySubject    string `env:"NATS_SUBJECT_VERIFY_TOKEN" envDefault:"auth.verify"`
	NATSUserEventSubject string `env:"NATS_SUBJECT_USER_REGISTERED" envDefault:"user.registered"`
	NATSPostEventSubject string `env:"NATS_SUBJECT_POST_CREATED" envDefault:"post.created"`

	ModerationURL      string        `env:"MODERATION_URL" envDefault:"http://127.0.0.1:5000"`
	ModerationTimeout  time.Duration `env:"MODERATION_TIMEOUT" envDefault:"3s"`
	ModerationFailOpen bool          `env:"MODERATION_FAIL_OPEN" envDefault:"true"`

	TempPostLimit int `env:"COPOTO_TEMP_POST_LIMIT" envDefault:"10"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
