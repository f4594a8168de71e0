package sealbox

import (
	"crypto/rsa"

	"github.com/sealbox/sealbox-go/keystore"
)

const defaultIdentityTag = "default"

// messengerConfig holds configuration for Open.
type messengerConfig struct {
	store keystore.Store
	tag   string
	trust *TrustCache
}

// encryptConfig holds per-call configuration for Encrypt.
type encryptConfig struct {
	recipient    *rsa.PublicKey
	recipientPEM []byte
}

// Option configures a Messenger.
type Option func(*messengerConfig)

// EncryptOption configures a single Encrypt call.
type EncryptOption func(*encryptConfig)

// WithKeyStore sets the secure-storage backend holding the identity
// keypair. Default: an in-process keystore.Memory store.
func WithKeyStore(store keystore.Store) Option {
	return func(c *messengerConfig) {
		c.store = store
	}
}

// WithIdentityTag sets the opaque tag the identity keypair is stored
// under. Default: "default".
func WithIdentityTag(tag string) Option {
	return func(c *messengerConfig) {
		c.tag = tag
	}
}

// WithTrustCache supplies a caller-owned trust cache, letting several
// messengers share one correspondent slot. Default: a fresh empty cache.
func WithTrustCache(cache *TrustCache) Option {
	return func(c *messengerConfig) {
		c.trust = cache
	}
}

// WithRecipient encrypts to an explicit public key instead of the cached
// correspondent.
func WithRecipient(pub *rsa.PublicKey) EncryptOption {
	return func(c *encryptConfig) {
		c.recipient = pub
	}
}

// WithRecipientPEM encrypts to the public key in the given PEM text
// (PUBLIC KEY, RSA PUBLIC KEY, or CERTIFICATE armor).
func WithRecipientPEM(pem []byte) EncryptOption {
	return func(c *encryptConfig) {
		c.recipientPEM = pem
	}
}
