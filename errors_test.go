package sealbox

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sealbox/sealbox-go/internal/crypto"
	"github.com/sealbox/sealbox-go/internal/der"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrKeyGeneration", ErrKeyGeneration},
		{"ErrKeystore", ErrKeystore},
		{"ErrSigningFailed", ErrSigningFailed},
		{"ErrVerificationFailed", ErrVerificationFailed},
		{"ErrEncryptionFailed", ErrEncryptionFailed},
		{"ErrDecryptionFailed", ErrDecryptionFailed},
		{"ErrBadEnvelope", ErrBadEnvelope},
		{"ErrBadPEM", ErrBadPEM},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			if s.err == nil {
				t.Error("sentinel error is nil")
			}
			if s.err.Error() == "" {
				t.Error("sentinel error has empty message")
			}
		})
	}
}

func TestKeystoreError(t *testing.T) {
	underlying := errors.New("disk full")
	err := &KeystoreError{Op: "ensure keypair", Err: underlying}

	expected := "keystore ensure keypair: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrKeystore) {
		t.Error("errors.Is() should match ErrKeystore")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should match underlying error")
	}
}

func TestVerificationError(t *testing.T) {
	err := &VerificationError{Message: "tampered ciphertext"}

	expected := "signature verification failed: tampered ciphertext"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrVerificationFailed) {
		t.Error("errors.Is() should match ErrVerificationFailed")
	}
}

func TestDecryptionError(t *testing.T) {
	underlying := errors.New("bad key")
	err := &DecryptionError{Err: underlying}

	if !errors.Is(err, ErrDecryptionFailed) {
		t.Error("errors.Is() should match ErrDecryptionFailed")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should match underlying error")
	}
}

func TestEnvelopeError(t *testing.T) {
	underlying := errors.New("truncated")
	err := &EnvelopeError{Err: underlying}

	expected := "malformed envelope: truncated"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrBadEnvelope) {
		t.Error("errors.Is() should match ErrBadEnvelope")
	}
}

func TestTypedErrorsImplementMarker(t *testing.T) {
	typed := []struct {
		name string
		err  SealboxError
	}{
		{"KeystoreError", &KeystoreError{Op: "load", Err: errors.New("x")}},
		{"VerificationError", &VerificationError{Message: "x"}},
		{"DecryptionError", &DecryptionError{Err: errors.New("x")}},
		{"EnvelopeError", &EnvelopeError{Err: errors.New("x")}},
	}

	for _, tt := range typed {
		t.Run(tt.name, func(t *testing.T) {
			var marker SealboxError
			if !errors.As(tt.err, &marker) {
				t.Error("errors.As() should match SealboxError")
			}
		})
	}
}

func TestWrapDecryptError(t *testing.T) {
	tests := []struct {
		name          string
		internalErr   error
		expectedMatch error
	}{
		{
			name:          "verification failure maps to ErrVerificationFailed",
			internalErr:   fmt.Errorf("verify: %w", crypto.ErrVerificationFailed),
			expectedMatch: ErrVerificationFailed,
		},
		{
			name:          "decryption failure maps to ErrDecryptionFailed",
			internalErr:   crypto.ErrDecryptionFailed,
			expectedMatch: ErrDecryptionFailed,
		},
		{
			name:          "bad PEM maps to ErrBadPEM",
			internalErr:   fmt.Errorf("sender key: %w", der.ErrBadPEM),
			expectedMatch: ErrBadPEM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapDecryptError(tt.internalErr)

			if !errors.Is(wrapped, tt.expectedMatch) {
				t.Errorf("wrapped error should match %v", tt.expectedMatch)
			}

			doubleWrapped := fmt.Errorf("decrypt: %w", wrapped)
			if !errors.Is(doubleWrapped, tt.expectedMatch) {
				t.Errorf("double-wrapped error should still match %v", tt.expectedMatch)
			}
		})
	}

	t.Run("nil returns nil", func(t *testing.T) {
		if wrapDecryptError(nil) != nil {
			t.Error("wrapDecryptError(nil) should return nil")
		}
	})

	t.Run("unknown error passes through", func(t *testing.T) {
		other := errors.New("some other error")
		if wrapDecryptError(other) != other {
			t.Error("wrapDecryptError should pass through unknown errors unchanged")
		}
	})
}

func TestWrapEncryptError(t *testing.T) {
	t.Run("signing failure maps to ErrSigningFailed", func(t *testing.T) {
		wrapped := wrapEncryptError(fmt.Errorf("pss: %w", crypto.ErrSigningFailed))
		if !errors.Is(wrapped, ErrSigningFailed) {
			t.Error("wrapped error should match ErrSigningFailed")
		}
	})

	t.Run("sealing failure maps to ErrEncryptionFailed", func(t *testing.T) {
		wrapped := wrapEncryptError(crypto.ErrEncryptionFailed)
		if !errors.Is(wrapped, ErrEncryptionFailed) {
			t.Error("wrapped error should match ErrEncryptionFailed")
		}
	})

	t.Run("nil returns nil", func(t *testing.T) {
		if wrapEncryptError(nil) != nil {
			t.Error("wrapEncryptError(nil) should return nil")
		}
	})
}
