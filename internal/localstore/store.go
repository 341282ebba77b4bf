// Package localstore is the client-local persistent key-value store. It plays
// the role browser localStorage plays for the web client: small JSON values
// under fixed keys, durable across runs.
package localstore

// Well-known keys.
const (
	KeyCart      = "cart"
	KeyAuthToken = "authToken"
)

type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
