package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddress string        `envconfig:"CHATCTL_ADDR" default:"localhost:8080"`
	Timeout       time.Duration `envconfig:"CHATCTL_TIMEOUT" default:"5s"`
	// CHATCTL_COLOURS enables colorized error output
	Colours bool `envconfig:"CHATCTL_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
