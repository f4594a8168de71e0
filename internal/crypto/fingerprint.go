package crypto

import "crypto/sha256"

// Fingerprint returns the identity fingerprint of a public key's canonical
// DER encoding: the standard-base64 SHA-256 digest, untruncated. It is pure
// and deterministic.
func Fingerprint(derBytes []byte) string {
	sum := sha256.Sum256(derBytes)
	return ToBase64(sum[:])
}
