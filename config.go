package auth

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

const DefaultHeaderKey = "Authorization"

// Config holds the token options. It is read only once passed to Register.
type Config struct {
	// Secret signs and verifies tokens.
	Secret string `env:"AUTH_JWT_SECRET" json:"secret"`
	// ExpiresIn is the token lifetime. Zero issues tokens without exp.
	ExpiresIn time.Duration `env:"AUTH_JWT_EXPIRES_IN" envDefault:"24h" json:"expires_in"`
	// HeaderKey is the request header carrying the token.
	HeaderKey string `env:"AUTH_JWT_HEADER_KEY" envDefault:"Authorization" json:"header_key"`
	// Issuer is stamped as iss when set.
	Issuer string `env:"AUTH_JWT_ISSUER" json:"issuer,omitempty"`
}

// LoadConfig reads Config from the environment. Files are loaded with
// godotenv first; a missing default .env is not an error.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse auth config: %w", err)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config is usable for signing and loading.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Secret, validation.Required),
		validation.Field(&c.HeaderKey, validation.Required),
		validation.Field(&c.ExpiresIn, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid auth config").
			WithTextCode(TextCodeInvalidConfig).
			WithCode(goerrors.CodeBadRequest)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.HeaderKey == "" {
		c.HeaderKey = DefaultHeaderKey
	}
	return c
}

func (c Config) signOptions() SignOptions {
	return SignOptions{
		ExpiresIn: c.ExpiresIn,
		Issuer:    c.Issuer,
	}
}
