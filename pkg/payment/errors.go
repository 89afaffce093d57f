package payment

import "errors"

var (
	// ErrMissingKey is reported when the merchant key is not configured.
	ErrMissingKey = errors.New("payment: merchant key is not configured")
	// ErrScriptLoad is reported when the checkout script cannot be loaded.
	ErrScriptLoad = errors.New("payment: failed to load checkout script")
	// ErrPaymentFailed wraps the widget's explicit payment failure event.
	ErrPaymentFailed = errors.New("payment: payment failed")
	// ErrDismissed is reported when the user closes the payment modal.
	ErrDismissed = errors.New("payment: checkout dismissed")
	// ErrWidgetOpen wraps synchronous failures while constructing or opening the widget.
	ErrWidgetOpen = errors.New("payment: failed to open checkout")
	// ErrMissingLoader is returned by NewBridge when no script loader is provided.
	ErrMissingLoader = errors.New("payment: script loader is required")
	// ErrMissingWidget is returned by NewBridge when no widget is provided.
	ErrMissingWidget = errors.New("payment: widget is required")
)
