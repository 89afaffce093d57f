package api

import "time"

// Config provides environment-based configuration for the backend API client.
type Config struct {
	BaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout     time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	RefreshPath string        `env:"API_REFRESH_PATH" envDefault:"/auth/refresh-token"`
	// PublicPaths lists frontend routes that never require authentication.
	// The presentation layer consults this list before redirecting to the
	// login entry point after a terminal auth failure.
	PublicPaths []string `env:"PUBLIC_PATHS" envSeparator:"," envDefault:"/,/login,/register,/forgot-password,/reset-password,/products/,/blog/,/about,/contact"`
	LoginPath   string   `env:"LOGIN_PATH" envDefault:"/login"`
}
