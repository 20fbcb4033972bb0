package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is parsed once at startup and handed to whoever needs it. Request
// paths never read the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	CORSOrigin  string `env:"CORS_ORIGIN" envDefault:"http://localhost:4200"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"secret_key_change_me"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:"redditclone"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"redditclone"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
