package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL    string
	HTTPPort string

	AuthSecret string
	CORSOrigin string

	// Digital Ocean Spaces
	SpacesEndpoint string
	SpacesRegion   string
	SpacesBucket   string
	SpacesKey      string
	SpacesSecret   string
}

func Load() (*Config, error) {
	// .env es opcional en producción, las variables pueden venir del entorno
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:          os.Getenv("DB_URL"),    // e.g., postgres://user:pass@db:5432/peopleflow
		HTTPPort:       os.Getenv("HTTP_PORT"), // e.g., :8080
		AuthSecret:     os.Getenv("AUTH_SECRET"),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"), // origen del frontend
		SpacesEndpoint: os.Getenv("DO_SPACES_ENDPOINT"), // e.g., https://sfo3.digitaloceanspaces.com
		SpacesRegion:   os.Getenv("DO_SPACES_REGION"),
		SpacesBucket:   os.Getenv("DO_SPACES_BUCKET"),
		SpacesKey:      os.Getenv("DO_ACCESS_KEY"),
		SpacesSecret:   os.Getenv("DO_SECRET_KEY"),
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = ":8080"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return fmt.Errorf("config: DB_URL es requerido")
	}
	if len(c.AuthSecret) < 32 {
		return fmt.Errorf("config: AUTH_SECRET debe tener al menos 32 caracteres")
	}
	required := []struct {
		name  string
		value string
	}{
		{"DO_SPACES_ENDPOINT", c.SpacesEndpoint},
		{"DO_SPACES_REGION", c.SpacesRegion},
		{"DO_SPACES_BUCKET", c.SpacesBucket},
		{"DO_ACCESS_KEY", c.SpacesKey},
		{"DO_SECRET_KEY", c.SpacesSecret},
	}
	for _, req := range required {
		if req.value == "" {
			return fmt.Errorf("config: %s es requerido", req.name)
		}
	}
	return nil
}
