package sealbox

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrKeyGeneration is returned when identity keypair generation fails.
	ErrKeyGeneration = errors.New("keypair generation failed")

	// ErrKeystore is returned when the secure-storage backend malfunctions.
	// A merely absent key is not a keystore error.
	ErrKeystore = errors.New("keystore backend failure")

	// ErrSigningFailed is returned when the envelope signature cannot be
	// produced.
	ErrSigningFailed = errors.New("signing failed")

	// ErrVerificationFailed is returned when an envelope's signature does
	// not verify; the message is rejected without producing plaintext.
	ErrVerificationFailed = errors.New("signature verification failed")

	// ErrEncryptionFailed is returned when sealing or key wrapping fails.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when the message key cannot be
	// unwrapped or the ciphertext fails authentication. The two causes are
	// intentionally indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrBadEnvelope is returned when envelope text cannot be decoded.
	ErrBadEnvelope = errors.New("malformed envelope")

	// ErrBadPEM is returned when a public key's PEM armor cannot be parsed.
	ErrBadPEM = errors.New("malformed PEM block")
)

// SealboxError is implemented by all typed SDK errors.
type SealboxError interface {
	error
	SealboxError() // marker method
}

// KeystoreError represents a secure-storage backend failure.
type KeystoreError struct {
	Op  string
	Err error
}

func (e *KeystoreError) Error() string {
	return fmt.Sprintf("keystore %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeystoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeystoreError) Is(target error) bool {
	return target == ErrKeystore
}

// SealboxError implements the SealboxError interface.
func (e *KeystoreError) SealboxError() {}

// VerificationError indicates potential tampering with an envelope.
type VerificationError struct {
	Message string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("signature verification failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *VerificationError) Is(target error) bool {
	return target == ErrVerificationFailed
}

// SealboxError implements the SealboxError interface.
func (e *VerificationError) SealboxError() {}

// DecryptionError represents a failure to recover a message body.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// SealboxError implements the SealboxError interface.
func (e *DecryptionError) SealboxError() {}

// EnvelopeError represents undecodable or incomplete envelope text.
type EnvelopeError struct {
	Err error
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("malformed envelope: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *EnvelopeError) Is(target error) bool {
	return target == ErrBadEnvelope
}

// SealboxError implements the SealboxError interface.
func (e *EnvelopeError) SealboxError() {}
