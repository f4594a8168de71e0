package crypto

import "errors"

var (
	// ErrKeyGenerationFailed is returned when keypair generation fails.
	ErrKeyGenerationFailed = errors.New("keypair generation failed")

	// ErrSigningFailed is returned when the envelope signature cannot be
	// produced.
	ErrSigningFailed = errors.New("signing failed")

	// ErrVerificationFailed is returned when the envelope signature does not
	// verify under the embedded sender key.
	ErrVerificationFailed = errors.New("signature verification failed")

	// ErrEncryptionFailed is returned when sealing or key wrapping fails.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed covers both RSA key-unwrap failures and AEAD tag
	// failures. The two are indistinguishable on purpose: separate errors
	// would give an attacker an oracle telling "wrong key" apart from
	// "corrupted ciphertext".
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when an AES key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when a nonce has the wrong size.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrKeyTooSmall is returned when a provisioning request asks for an RSA
	// key below the enforced floor.
	ErrKeyTooSmall = errors.New("RSA key size below minimum")
)
