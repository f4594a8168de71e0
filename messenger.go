package sealbox

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/crypto"
	"github.com/sealbox/sealbox-go/internal/der"
	"github.com/sealbox/sealbox-go/internal/envelope"
	"github.com/sealbox/sealbox-go/keystore"
)

// Messenger is one installed identity: a provisioned keypair plus the
// session's trust cache. It is safe for concurrent use.
type Messenger struct {
	store       keystore.Store
	tag         string
	priv        *rsa.PrivateKey
	pub         *rsa.PublicKey
	publicDER   []byte
	publicPEM   string
	fingerprint string
	trust       *TrustCache
}

// Message is returned by Decrypt only on full success.
type Message struct {
	// Plaintext is the recovered message body.
	Plaintext []byte
	// SenderKey is the verified sender public key from the envelope.
	SenderKey *rsa.PublicKey
	// SenderFingerprint is recomputed from SenderKey; the fingerprint
	// carried on the wire is never trusted.
	SenderFingerprint string
	// FingerprintMismatch reports that the wire fingerprint disagreed with
	// the recomputed one. The message itself verified; the mismatch is
	// informational.
	FingerprintMismatch bool
}

// Open loads the identity stored under the configured tag, generating a
// keypair first if none exists. Provisioning is idempotent: an installed
// identity is never rotated.
func Open(opts ...Option) (*Messenger, error) {
	cfg := messengerConfig{tag: defaultIdentityTag}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = keystore.NewMemory()
	}
	if cfg.trust == nil {
		cfg.trust = NewTrustCache()
	}

	priv, err := cfg.store.EnsureKeypair(cfg.tag)
	if err != nil {
		if errors.Is(err, crypto.ErrKeyGenerationFailed) || errors.Is(err, crypto.ErrKeyTooSmall) {
			return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
		}
		return nil, &KeystoreError{Op: "ensure keypair", Err: err}
	}

	pub := keystore.DerivePublicKey(priv)
	publicDER, err := crypto.ExportPublicDER(pub)
	if err != nil {
		return nil, &KeystoreError{Op: "export public key", Err: err}
	}
	publicPEM, err := crypto.PublicKeyPEM(pub)
	if err != nil {
		return nil, &KeystoreError{Op: "export public key", Err: err}
	}

	return &Messenger{
		store:       cfg.store,
		tag:         cfg.tag,
		priv:        priv,
		pub:         pub,
		publicDER:   publicDER,
		publicPEM:   publicPEM,
		fingerprint: crypto.Fingerprint(publicDER),
		trust:       cfg.trust,
	}, nil
}

// Fingerprint returns this identity's public-key fingerprint, suitable for
// out-of-band comparison between correspondents.
func (m *Messenger) Fingerprint() string {
	return m.fingerprint
}

// PublicKeyPEM returns this identity's public key as PEM text to hand to a
// correspondent.
func (m *Messenger) PublicKeyPEM() string {
	return m.publicPEM
}

// TrustCache returns the session trust cache backing this messenger.
func (m *Messenger) TrustCache() *TrustCache {
	return m.trust
}

// Encrypt seals plaintext into sharable envelope text. The recipient is
// the explicit option if given, otherwise the cached correspondent,
// otherwise this identity itself (the ordinary state before any
// correspondent is known).
//
// The context is consulted only before work starts: a sealing operation
// that has begun always runs to completion, and cancellation simply
// abandons its result.
func (m *Messenger) Encrypt(ctx context.Context, plaintext []byte, opts ...EncryptOption) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	recipient, err := m.resolveRecipient(opts)
	if err != nil {
		return "", err
	}

	env, err := crypto.Encrypt(plaintext, m.priv, recipient)
	if err != nil {
		return "", wrapEncryptError(err)
	}

	text, err := envelope.Marshal(env)
	if err != nil {
		return "", &EnvelopeError{Err: err}
	}
	return text, nil
}

// Decrypt verifies and opens pasted envelope text (base64-wrapped or raw
// JSON). On success the sender becomes the cached correspondent. The same
// cancellation policy as Encrypt applies.
func (m *Messenger) Decrypt(ctx context.Context, text string) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := envelope.Unmarshal(text)
	if err != nil {
		return nil, &EnvelopeError{Err: err}
	}

	result, err := crypto.Decrypt(env, m.priv)
	if err != nil {
		return nil, wrapDecryptError(err)
	}

	m.trust.Learn(result.SenderKey, result.SenderFingerprint)

	return &Message{
		Plaintext:           result.Plaintext,
		SenderKey:           result.SenderKey,
		SenderFingerprint:   result.SenderFingerprint,
		FingerprintMismatch: result.FingerprintMismatch,
	}, nil
}

// resolveRecipient picks the key to wrap the message for.
func (m *Messenger) resolveRecipient(opts []EncryptOption) (*rsa.PublicKey, error) {
	var cfg encryptConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.recipientPEM != nil {
		pub, err := der.ParsePublicKey(cfg.recipientPEM)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPEM, err)
		}
		return pub, nil
	}
	if cfg.recipient != nil {
		return cfg.recipient, nil
	}
	if key, _, ok := m.trust.Peer(); ok {
		return key, nil
	}
	return m.pub, nil
}

// wrapEncryptError converts internal crypto errors to public sentinel
// errors so that errors.Is() checks work correctly.
func wrapEncryptError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypto.ErrSigningFailed):
		return fmt.Errorf("%w: %v", ErrSigningFailed, err)
	case errors.Is(err, crypto.ErrEncryptionFailed),
		errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, crypto.ErrInvalidNonceSize):
		return fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	return err
}

// wrapDecryptError converts internal protocol errors to the public typed
// errors.
func wrapDecryptError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, der.ErrBadPEM):
		return fmt.Errorf("%w: %v", ErrBadPEM, err)
	case errors.Is(err, crypto.ErrVerificationFailed):
		return &VerificationError{Message: err.Error()}
	case errors.Is(err, crypto.ErrDecryptionFailed),
		errors.Is(err, crypto.ErrInvalidKeySize):
		return &DecryptionError{Err: err}
	}
	return err
}
