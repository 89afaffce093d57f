package main

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/helmcraft/storefront/core/api"
	"github.com/helmcraft/storefront/core/cart"
	"github.com/helmcraft/storefront/core/catalog"
	"github.com/helmcraft/storefront/core/checkout"
	"github.com/helmcraft/storefront/core/config"
	"github.com/helmcraft/storefront/core/kvstore"
	"github.com/helmcraft/storefront/core/logger"
	"github.com/helmcraft/storefront/core/notify"
	"github.com/helmcraft/storefront/core/server"
	"github.com/helmcraft/storefront/core/session"
	redisdb "github.com/helmcraft/storefront/integration/database/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg)

	logOpt := logger.WithDevelopment(cfg.AppName)
	if cfg.isProduction() {
		logOpt = logger.WithProduction(cfg.AppName)
	}
	log := logger.New(logOpt)

	storage, readiness, err := newStorage(ctx, cfg)
	if err != nil {
		log.Error("Failed to init storage", logger.Component("storage"), logger.Error(err))
		os.Exit(1)
	}

	bus := notify.NewBus()
	defer bus.Close()

	// The backend keeps the refresh token in an http-only cookie, so the
	// client needs a jar to carry it across requests.
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Error("Failed to create cookie jar", logger.Component("api"), logger.Error(err))
		os.Exit(1)
	}

	creds := session.NewCredentials(storage, cfg.Session.StorageKey)

	client, err := api.New(cfg.API, creds,
		api.WithHTTPClient(&http.Client{Jar: jar, Timeout: cfg.API.Timeout}),
		api.WithNotifier(bus),
		api.WithLogger(log.With(logger.Component("api"))),
	)
	if err != nil {
		log.Error("Failed to create API client", logger.Component("api"), logger.Error(err))
		os.Exit(1)
	}

	sessionStore, err := session.NewStore(client, creds,
		session.WithLogger(log.With(logger.Component("session"))),
	)
	if err != nil {
		log.Error("Failed to create session store", logger.Component("session"), logger.Error(err))
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(client, storage, cfg.Cart,
		cart.WithNotifier(bus),
		cart.WithLogger(log.With(logger.Component("cart"))),
	)
	if err != nil {
		log.Error("Failed to create cart store", logger.Component("cart"), logger.Error(err))
		os.Exit(1)
	}

	orders, err := checkout.NewService(client)
	if err != nil {
		log.Error("Failed to create checkout service", logger.Component("checkout"), logger.Error(err))
		os.Exit(1)
	}

	products, err := catalog.NewClient(client)
	if err != nil {
		log.Error("Failed to create catalog client", logger.Component("catalog"), logger.Error(err))
		os.Exit(1)
	}

	// An expired session detected by the transport layer tears down local
	// auth state; a sign-out in turn resets the cart.
	client.OnAuthExpired(sessionStore.HandleAuthExpired)
	sessionStore.OnSignOut(cartStore.ResetOnSignOut)

	if err := sessionStore.Rehydrate(ctx); err != nil {
		log.Warn("Session rehydration failed", logger.Component("session"), logger.Error(err))
	}
	if err := cartStore.Rehydrate(ctx); err != nil {
		log.Warn("Cart rehydration failed", logger.Component("cart"), logger.Error(err))
	}

	h := &handlers{
		cfg:      cfg,
		log:      log,
		session:  sessionStore,
		cart:     cartStore,
		orders:   orders,
		catalog:  products,
		bus:      bus,
		readyzFn: readiness,
	}

	s, err := server.New(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.Run(ctx, h.routes())
	})

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

// newStorage picks the persisted-state backend. The returned probe reports
// backend health for the readiness endpoint.
func newStorage(ctx context.Context, cfg Config) (kvstore.Store, func(context.Context) error, error) {
	if cfg.StorageBackend != "redis" {
		return kvstore.NewMemory(), func(context.Context) error { return nil }, nil
	}

	client, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return redisdb.NewStore(client, cfg.Redis.KeyPrefix), redisdb.Healthcheck(client), nil
}
