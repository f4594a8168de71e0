// Package crypto implements the hybrid envelope protocol: symmetric sealing
// of the message body, asymmetric wrapping of the message key, and a
// signature binding both to the sender's identity.
//
// # Algorithm Suite
//
// There is exactly one suite, with no negotiation:
//
//   - RSA-4096 identity keypairs, exchanged as SubjectPublicKeyInfo DER.
//
//   - AES-256-GCM: authenticated encryption of the message body under a
//     fresh random key per message. The nonce is prefixed to the sealed
//     output, forming the combined ciphertext blob.
//
//   - RSA-OAEP with SHA-256: wraps the per-message AES key for the
//     recipient.
//
//   - RSA-PSS with SHA-256: signs nonce || combined ciphertext || sender
//     SPKI DER, binding the ciphertext to the embedded sender identity.
//
// # Security Model
//
// Signature verification is performed BEFORE any decryption. A message
// whose signature does not verify is rejected outright; no plaintext, full
// or partial, is ever produced from it. Key-unwrap failures and AEAD tag
// failures are reported identically so callers cannot be used as an oracle
// distinguishing a wrong key from a corrupted ciphertext.
//
// The per-message AES key exists only for the duration of one call and is
// never persisted.
//
// # Identity
//
// A correspondent's identity is the SHA-256 fingerprint of their public
// key's canonical DER encoding. The fingerprint carried on the wire is
// advisory: receivers always recompute it from the key itself.
package crypto
