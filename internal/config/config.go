// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DatabaseURL is the only startup-fatal setting.
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// S3Bucket is required for any artifact operation; when empty the
	// artifact store reports itself unavailable.
	S3Bucket string `envconfig:"S3_BUCKET"`

	// MailNotifierURL enables the best-effort notification when set.
	MailNotifierURL string `envconfig:"MAIL_NOTIFIER_URL"`

	Env  string `envconfig:"ENV" default:"local"`
	Port int    `envconfig:"PORT" default:"3002"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("envconfig.Process: %w", err)
	}
	return cfg, nil
}
