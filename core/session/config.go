package session

// DefaultStorageKey is the namespaced key the credential record is persisted under.
const DefaultStorageKey = "storefront:auth"

// Config provides environment-based configuration for the session store.
type Config struct {
	StorageKey string `env:"SESSION_STORAGE_KEY" envDefault:"storefront:auth"`
}
