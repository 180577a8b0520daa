package main

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/deliverkit/pkg/deliverable"
	"github.com/dmitrymomot/deliverkit/pkg/logger"
	"github.com/dmitrymomot/deliverkit/pkg/mailer"
	"github.com/dmitrymomot/deliverkit/pkg/mailer/resend"
	"github.com/dmitrymomot/deliverkit/pkg/redis"
	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

// Storage drivers.
const (
	driverMemory = "memory"
	driverS3     = "s3"
)

type config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"2m"`
	MaxBodySize     int64         `env:"MAX_BODY_SIZE" envDefault:"67108864"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	// MemoryBaseURL prefixes links served by the memory driver.
	MemoryBaseURL string `env:"STORAGE_MEMORY_BASE_URL" envDefault:"http://localhost:8080/files"`

	DefaultClientName  string `env:"DEFAULT_CLIENT_NAME" envDefault:"there"`
	DefaultProjectName string `env:"DEFAULT_PROJECT_NAME" envDefault:"your project"`

	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	Logger      logger.Config
	Mailer      mailer.Config
	Resend      resend.Config
	Storage     storage.Config     `envPrefix:"STORAGE_"`
	Redis       redis.Config       `envPrefix:"REDIS_"`
	Deliverable deliverable.Config `envPrefix:"DELIVERABLE_"`
}

func loadConfig() (config, error) {
	return env.ParseAs[config]()
}
