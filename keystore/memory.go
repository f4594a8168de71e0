package keystore

import (
	"crypto/rsa"
	"sync"

	"github.com/sealbox/sealbox-go/internal/crypto"
)

// Memory is an in-process Store. Keys live only as long as the process;
// it suits tests and embedding hosts that handle persistence themselves.
type Memory struct {
	cfg  storeConfig
	mu   sync.Mutex
	keys map[string]*rsa.PrivateKey
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-process store.
func NewMemory(opts ...StoreOption) *Memory {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Memory{
		cfg:  cfg,
		keys: make(map[string]*rsa.PrivateKey),
	}
}

// EnsureKeypair implements Store. Generation happens under the store lock,
// so concurrent first-use callers block until the single winner finishes
// and then observe its key.
func (s *Memory) EnsureKeypair(tag string) (*rsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.keys[tag]; ok {
		return key, nil
	}

	key, err := crypto.GenerateKeypair(s.cfg.keyBits)
	if err != nil {
		return nil, err
	}
	s.keys[tag] = key
	return key, nil
}

// LoadPrivateKey implements Store.
func (s *Memory) LoadPrivateKey(tag string) (*rsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[tag]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

// Import implements Store.
func (s *Memory) Import(tag string, key *rsa.PrivateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[tag]; ok {
		return ErrKeyExists
	}
	s.keys[tag] = key
	return nil
}
