package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/der"
)

// GenerateKeypair creates a new RSA identity keypair. Bits below
// MinRSAKeyBits are rejected; pass RSAKeyBits for a standard identity.
func GenerateKeypair(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSAKeyBits {
		return nil, fmt.Errorf("%w: %d bits, want at least %d", ErrKeyTooSmall, bits, MinRSAKeyBits)
	}

	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGenerationFailed, err)
	}
	return priv, nil
}

// DerivePublicKey returns the public half of a private key. The derivation
// is deterministic.
func DerivePublicKey(priv *rsa.PrivateKey) *rsa.PublicKey {
	return &priv.PublicKey
}

// ExportPublicDER returns the canonical SubjectPublicKeyInfo encoding of
// pub. This encoding is the input to Fingerprint and the byte range bound
// by envelope signatures.
func ExportPublicDER(pub *rsa.PublicKey) ([]byte, error) {
	spki, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	return spki, nil
}

// PublicKeyPEM returns the PEM armor of pub's SPKI encoding.
func PublicKeyPEM(pub *rsa.PublicKey) (string, error) {
	spki, err := ExportPublicDER(pub)
	if err != nil {
		return "", err
	}
	return der.Encode(spki, der.LabelPublicKey), nil
}
