// Package keystore owns the asymmetric keypair lifecycle behind an abstract
// secure-storage capability. The cipher layer depends only on the Store
// interface, never on a concrete backend; implementations may sit on an OS
// keychain, an encrypted file, or an HSM.
package keystore

import (
	"crypto/rsa"
	"errors"

	"github.com/sealbox/sealbox-go/internal/crypto"
)

var (
	// ErrKeyNotFound reports that no private key exists under a tag. It is
	// deliberately distinct from backend malfunction: absence is an
	// ordinary pre-provisioning state, not an error condition of the store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAuthFailed is returned when a stored key cannot be unsealed with
	// the configured passphrase.
	ErrAuthFailed = errors.New("keystore authentication failed")

	// ErrInvalid is returned when a stored record is structurally broken.
	ErrInvalid = errors.New("keystore record is invalid")

	// ErrKeyExists is returned by Import when a key is already installed
	// under the tag. Existing identities are never silently rotated.
	ErrKeyExists = errors.New("key already exists")
)

// Store is the secure-storage capability keyed by an opaque application
// identity tag.
type Store interface {
	// EnsureKeypair returns the private key stored under tag, generating
	// one first if absent. Provisioning is idempotent and exactly-once
	// under concurrent first use: one caller creates, the rest observe the
	// same key. At most one private key ever exists per tag.
	EnsureKeypair(tag string) (*rsa.PrivateKey, error)

	// LoadPrivateKey returns the private key under tag, or ErrKeyNotFound
	// when none exists. Any other error indicates backend malfunction.
	LoadPrivateKey(tag string) (*rsa.PrivateKey, error)

	// Import installs an existing private key under tag. It fails with
	// ErrKeyExists rather than replace an installed identity.
	Import(tag string, key *rsa.PrivateKey) error
}

// DerivePublicKey returns the public half of a private key; the derivation
// is deterministic.
func DerivePublicKey(priv *rsa.PrivateKey) *rsa.PublicKey {
	return crypto.DerivePublicKey(priv)
}

// storeConfig holds backend construction settings.
type storeConfig struct {
	keyBits int
}

func defaultStoreConfig() storeConfig {
	return storeConfig{keyBits: crypto.RSAKeyBits}
}

// StoreOption configures backend construction.
type StoreOption func(*storeConfig)

// WithKeyBits overrides the size of generated keypairs. This is a
// provisioning knob (subject to the 2048-bit floor); the wire protocol is
// unaffected. Default: 4096.
func WithKeyBits(bits int) StoreOption {
	return func(c *storeConfig) {
		c.keyBits = bits
	}
}
