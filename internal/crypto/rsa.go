package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// wrapKey encrypts a per-message AES key for the recipient with RSA-OAEP
// over SHA-256.
func wrapKey(recipient *rsa.PublicKey, key []byte) ([]byte, error) {
	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, recipient, key, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wrap message key: %v", ErrEncryptionFailed, err)
	}
	return wrapped, nil
}

// unwrapKey recovers a per-message AES key with RSA-OAEP over SHA-256. The
// error carries no detail about why the unwrap failed.
func unwrapKey(recipient *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	key, err := rsa.DecryptOAEP(sha256.New(), nil, recipient, wrapped, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return key, nil
}

// sign produces an RSA-PSS signature over SHA-256(message).
func sign(priv *rsa.PrivateKey, message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	sig, err := rsa.SignPSS(rand.Reader, priv, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return sig, nil
}

// verify checks an RSA-PSS signature over SHA-256(message).
func verify(pub *rsa.PublicKey, message, sig []byte) error {
	digest := sha256.Sum256(message)
	err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
	})
	if err != nil {
		return ErrVerificationFailed
	}
	return nil
}
