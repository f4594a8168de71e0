package sealbox

import (
	"crypto/rsa"
	"sync"
)

// TrustCache is the session-lived record of the most recently verified
// correspondent: a single mutable slot holding their public key and
// fingerprint. Every successful Decrypt replaces it unconditionally
// (last-writer-wins, no merge, no history), and Encrypt consults it when
// the caller names no recipient. It is never persisted.
//
// The slot is mutex-guarded so concurrent decrypts can never expose a torn
// half-updated entry.
type TrustCache struct {
	mu          sync.Mutex
	key         *rsa.PublicKey
	fingerprint string
}

// NewTrustCache returns an empty cache.
func NewTrustCache() *TrustCache {
	return &TrustCache{}
}

// Learn unconditionally replaces the cached correspondent.
func (c *TrustCache) Learn(key *rsa.PublicKey, fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.fingerprint = fingerprint
}

// Peer returns the cached correspondent's key and fingerprint. ok is false
// while no correspondent has been verified this session.
func (c *TrustCache) Peer() (key *rsa.PublicKey, fingerprint string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key, c.fingerprint, c.key != nil
}

// Reset clears the slot.
func (c *TrustCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = nil
	c.fingerprint = ""
}
