package payment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/helmcraft/storefront/core/logger"
)

// DefaultScriptURL is the gateway's hosted checkout script.
const DefaultScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

// Config provides environment-based configuration for the payment bridge.
// KeyID identifies the merchant to the gateway; without it no checkout can
// be opened.
type Config struct {
	KeyID     string `env:"RAZORPAY_KEY_ID"`
	ScriptURL string `env:"RAZORPAY_SCRIPT_URL" envDefault:"https://checkout.razorpay.com/v1/checkout.js"`
}

// Prefill carries contact fields shown pre-filled in the payment widget.
// Absent fields stay empty strings.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// Checkout describes one payment attempt: the gateway order created by the
// backend plus the amount the user sees.
type Checkout struct {
	GatewayOrderID string
	Amount         float64
	Currency       string
	Prefill        Prefill
}

// Result carries the three correlation identifiers the backend needs to
// verify the transaction. The bridge never verifies the signature itself.
type Result struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// Callbacks receive the outcome of a checkout attempt. All failure channels
// (widget failure event, user dismissal, synchronous errors and panics
// while opening) route to OnFailure; success arrives only through the
// widget's completion handler.
type Callbacks struct {
	OnSuccess func(Result)
	OnFailure func(error)
}

// ScriptLoader makes the gateway's checkout script available. Load reports
// false on failure rather than returning an error: a script that cannot be
// fetched is a recoverable condition the caller routes through OnFailure.
type ScriptLoader interface {
	Load(ctx context.Context, url string) bool
}

// Options is the widget configuration assembled from Config and Checkout.
// AmountMinor is in the currency's minor unit (paise for INR).
type Options struct {
	Key            string
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	Prefill        Prefill
}

// Events are the widget's outcome channels.
type Events struct {
	Completed func(Result)
	Failed    func(error)
	Dismissed func()
}

// Widget is the third-party payment modal. Open may return an error or
// panic synchronously; asynchronous outcomes arrive via Events.
type Widget interface {
	Open(ctx context.Context, opts Options, events Events) error
}

// Bridge funnels the payment widget's outcomes into caller-supplied
// callbacks and guards the script load so it happens at most once.
type Bridge struct {
	cfg    Config
	loader ScriptLoader
	widget Widget
	log    *slog.Logger

	mu     sync.Mutex
	loaded bool
}

// BridgeOption configures the Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the structured logger. Logging is off by default.
func WithLogger(log *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBridge creates a payment bridge over the given loader and widget.
func NewBridge(cfg Config, loader ScriptLoader, widget Widget, opts ...BridgeOption) (*Bridge, error) {
	if loader == nil {
		return nil, ErrMissingLoader
	}
	if widget == nil {
		return nil, ErrMissingWidget
	}

	if cfg.ScriptURL == "" {
		cfg.ScriptURL = DefaultScriptURL
	}

	b := &Bridge{
		cfg:    cfg,
		loader: loader,
		widget: widget,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// OpenCheckout opens the payment widget for the given order. Outcomes are
// reported exclusively through cb; OpenCheckout itself never returns an
// error because every failure channel must reach the same OnFailure.
func (b *Bridge) OpenCheckout(ctx context.Context, co Checkout, cb Callbacks) {
	if cb.OnFailure == nil {
		cb.OnFailure = func(error) {}
	}
	if cb.OnSuccess == nil {
		cb.OnSuccess = func(Result) {}
	}

	// Missing merchant key is misconfiguration, not a runtime failure.
	if b.cfg.KeyID == "" {
		cb.OnFailure(ErrMissingKey)
		return
	}

	if !b.ensureLoaded(ctx) {
		b.log.Warn("payment script failed to load",
			logger.Component("payment"), logger.Path(b.cfg.ScriptURL))
		cb.OnFailure(ErrScriptLoad)
		return
	}

	opts := Options{
		Key:            b.cfg.KeyID,
		GatewayOrderID: co.GatewayOrderID,
		AmountMinor:    int64(math.Round(co.Amount * 100)),
		Currency:       co.Currency,
		Prefill:        co.Prefill,
	}

	events := Events{
		Completed: cb.OnSuccess,
		Failed: func(err error) {
			cb.OnFailure(fmt.Errorf("%w: %w", ErrPaymentFailed, err))
		},
		Dismissed: func() {
			cb.OnFailure(ErrDismissed)
		},
	}

	defer func() {
		if r := recover(); r != nil {
			cb.OnFailure(fmt.Errorf("%w: %v", ErrWidgetOpen, r))
		}
	}()

	if err := b.widget.Open(ctx, opts, events); err != nil {
		cb.OnFailure(fmt.Errorf("%w: %w", ErrWidgetOpen, err))
	}
}

// ensureLoaded loads the script at most once. A failed attempt is not
// cached, so a later checkout can retry the load.
func (b *Bridge) ensureLoaded(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded {
		return true
	}
	if !b.loader.Load(ctx, b.cfg.ScriptURL) {
		return false
	}
	b.loaded = true
	return true
}
