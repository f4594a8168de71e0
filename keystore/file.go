package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sealbox/sealbox-go/internal/crypto"
)

const (
	sealedVersion = 1
	saltSize      = 16
	fileMagic     = "SBOXKEY1\n"

	// Ceiling on the memory a record's KDF parameters may demand (1 GiB).
	// Records travel with their own parameters, so an unchecked value would
	// let a crafted file dictate the allocation.
	maxKDFMemoryKB = 1 << 20
)

// sealedKey is the on-disk record: a PKCS#8 private key inside an
// argon2id + XChaCha20-Poly1305 envelope. KDF parameters travel with the
// record so they can be tightened later without breaking old files.
type sealedKey struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// File is a Store persisting one passphrase-encrypted key file per tag
// under a directory.
type File struct {
	dir        string
	passphrase string
	cfg        storeConfig
	mu         sync.Mutex
}

var _ Store = (*File)(nil)

// NewFile creates a file-backed store rooted at dir, creating the directory
// if needed. The passphrase seals every key file.
func NewFile(dir, passphrase string, opts ...StoreOption) (*File, error) {
	if strings.TrimSpace(passphrase) == "" {
		return nil, errors.New("keystore passphrase is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}

	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &File{dir: dir, passphrase: passphrase, cfg: cfg}, nil
}

// EnsureKeypair implements Store. The in-process lock serializes callers in
// one process; O_EXCL creation guards against a second process racing the
// same tag, with the loser re-reading the winner's file.
func (s *File) EnsureKeypair(tag string) (*rsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.load(tag)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	key, err = crypto.GenerateKeypair(s.cfg.keyBits)
	if err != nil {
		return nil, err
	}

	if err := s.write(tag, key); err != nil {
		if errors.Is(err, ErrKeyExists) {
			return s.load(tag)
		}
		return nil, err
	}
	return key, nil
}

// LoadPrivateKey implements Store.
func (s *File) LoadPrivateKey(tag string) (*rsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(tag)
}

// Import implements Store.
func (s *File) Import(tag string, key *rsa.PrivateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(tag, key)
}

func (s *File) load(tag string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(s.path(tag))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	pkcs8, err := s.open(raw)
	if err != nil {
		return nil, err
	}

	parsed, err := x509.ParsePKCS8PrivateKey(pkcs8)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", ErrInvalid, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: stored key is %T, not RSA", ErrInvalid, parsed)
	}
	return key, nil
}

func (s *File) write(tag string, key *rsa.PrivateKey) error {
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("marshal private key: %w", err)
	}

	sealed, err := s.seal(pkcs8)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path(tag), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return ErrKeyExists
	}
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(sealed); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("write key file: %w", err)
	}
	return nil
}

func (s *File) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := s.deriveKey(salt)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	record := &sealedKey{
		Version:     sealedVersion,
		KDF:         "argon2id",
		KDFTime:     2,
		KDFMemoryKB: 64 * 1024,
		KDFThreads:  1,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, plaintext, nil),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	return append([]byte(fileMagic), raw...), nil
}

func (s *File) open(data []byte) ([]byte, error) {
	if !strings.HasPrefix(string(data), fileMagic) {
		return nil, fmt.Errorf("%w: missing file magic", ErrInvalid)
	}

	var record sealedKey
	if err := json.Unmarshal(data[len(fileMagic):], &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if record.Version != sealedVersion || record.KDF != "argon2id" {
		return nil, fmt.Errorf("%w: unsupported record version", ErrInvalid)
	}
	// argon2.IDKey panics on zero time or threads; a record demanding
	// outlandish memory is equally untrustworthy. All three are ErrInvalid.
	if record.KDFTime < 1 || record.KDFThreads < 1 || record.KDFMemoryKB < 1 ||
		record.KDFMemoryKB > maxKDFMemoryKB {
		return nil, fmt.Errorf("%w: KDF parameters out of range", ErrInvalid)
	}

	key := argon2.IDKey([]byte(s.passphrase), record.Salt,
		record.KDFTime, record.KDFMemoryKB, record.KDFThreads, chacha20poly1305.KeySize)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, record.Nonce, record.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func (s *File) deriveKey(salt []byte) []byte {
	return argon2.IDKey([]byte(s.passphrase), salt, 2, 64*1024, 1, chacha20poly1305.KeySize)
}

// path maps a tag to its key file; characters unsafe in file names are
// replaced.
func (s *File) path(tag string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, tag)
	return filepath.Join(s.dir, sanitized+".key")
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
