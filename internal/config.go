package internal

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	GrpcHost        string        `env:"GRPC_HOST,default=localhost" validate:"required"`
	GrpcPort        int           `env:"GRPC_PORT,default=8080" validate:"min=0,max=65535"`
	HTTPHost        string        `env:"HTTP_HOST,default=localhost" validate:"required"`
	HTTPPort        int           `env:"HTTP_PORT,default=8081" validate:"min=0,max=65535"`
	EnableHTTP      bool          `env:"ENABLE_HTTP,default=true"`
	MaxEntries      int           `env:"MAX_ENTRIES,default=255" validate:"min=1"`
	MaxMessageLen   int           `env:"MAX_MESSAGE_LEN,default=255" validate:"min=1"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s" validate:"gt=0"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=5s" validate:"gt=0"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
}

// LoadConfig reads an optional .env file then the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) GrpcAddress() string {
	return net.JoinHostPort(c.GrpcHost, strconv.Itoa(c.GrpcPort))
}

func (c Config) HTTPAddress() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}
