package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	JWT      JWTConfig
	Deepgram DeepgramConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host          string
	Port          string
	RedisPassword string
	RedisDB       string
}

type RabbitMQConfig struct {
	URL string
}

// JWTConfig carries the token signing material. Loaded once at startup and
// never mutated afterwards.
type JWTConfig struct {
	Secret    string
	Algorithm string
}

type DeepgramConfig struct {
	APIKey string
}

func Load() *Config {
	cfg := &Config{
		AppName: os.Getenv("APP_NAME"),
		AppEnv:  os.Getenv("APP_ENV"),
		AppPort: os.Getenv("APP_PORT"),

		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},

		Redis: RedisConfig{
			Host:          os.Getenv("REDIS_HOST"),
			Port:          os.Getenv("REDIS_PORT"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       os.Getenv("REDIS_DB"),
		},

		RabbitMQ: RabbitMQConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},

		JWT: JWTConfig{
			Secret:    os.Getenv("SECRET_KEY"),
			Algorithm: os.Getenv("ALGORITHM"),
		},

		Deepgram: DeepgramConfig{
			APIKey: os.Getenv("DEEPGRAM_API_KEY"),
		},
	}

	if cfg.JWT.Secret == "" {
		logrus.Fatal("SECRET_KEY environment variable is required")
	}
	if cfg.JWT.Algorithm == "" {
		logrus.Fatal("ALGORITHM environment variable is required")
	}

	return cfg
}
