package cart

// DefaultStorageKey is the namespaced key the cart snapshot is persisted under.
const DefaultStorageKey = "storefront:cart"

// Config provides environment-based configuration for the cart store.
type Config struct {
	StorageKey string `env:"CART_STORAGE_KEY" envDefault:"storefront:cart"`
	// AdminPathPrefix marks administrative routes where the background cart
	// fetch is skipped entirely.
	AdminPathPrefix string `env:"ADMIN_PATH_PREFIX" envDefault:"/admin"`
	// ClearOnLogout controls whether the persisted cart snapshot is wiped on
	// sign-out. The default keeps it, preserving guest-cart continuity.
	ClearOnLogout bool `env:"CART_CLEAR_ON_LOGOUT" envDefault:"false"`
}
