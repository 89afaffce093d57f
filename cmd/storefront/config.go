package main

import (
	"github.com/helmcraft/storefront/core/api"
	"github.com/helmcraft/storefront/core/cart"
	"github.com/helmcraft/storefront/core/checkout"
	"github.com/helmcraft/storefront/core/server"
	"github.com/helmcraft/storefront/core/session"
	"github.com/helmcraft/storefront/integration/database/redis"
	"github.com/helmcraft/storefront/pkg/payment"
)

// Config aggregates every component's environment configuration.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"storefront"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// StorageBackend selects where persisted client state lives:
	// "memory" or "redis".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	Server   server.Config
	API      api.Config
	Session  session.Config
	Cart     cart.Config
	Checkout checkout.SummaryConfig
	Payment  payment.Config
	Redis    redis.Config
}

func (c Config) isProduction() bool {
	return c.AppEnv == "production"
}
