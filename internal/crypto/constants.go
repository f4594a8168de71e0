package crypto

const (
	// RSAKeyBits is the size of a generated identity keypair.
	RSAKeyBits = 4096
	// MinRSAKeyBits is the floor enforced when provisioning keypairs.
	MinRSAKeyBits = 2048

	// AESKeySize is the size of a per-message AES-256 key in bytes.
	AESKeySize = 32
	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16
)

// Alg is the canonical name of the supported suite. The wire field is
// informational only.
const Alg = "RSA-OAEP-256+AES-GCM+RSA-PSS-256"
