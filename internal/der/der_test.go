package der

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"sync"
	"testing"
)

var (
	testKeyOnce sync.Once
	testKeyRSA  *rsa.PrivateKey
)

// testKey returns a shared RSA key for encoding tests. 2048 bits keeps the
// test suite fast; the encoder is size-agnostic.
func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		var err error
		testKeyRSA, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("rsa.GenerateKey() error = %v", err)
		}
	})
	if testKeyRSA == nil {
		t.Fatal("test key generation failed")
	}
	return testKeyRSA
}

func TestEncodeLength(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x80}},
		{255, []byte{0x81, 0xff}},
		{256, []byte{0x82, 0x01, 0x00}},
		{65535, []byte{0x82, 0xff, 0xff}},
		{65536, []byte{0x83, 0x01, 0x00, 0x00}},
	}

	for _, tt := range tests {
		if got := EncodeLength(tt.n); !bytes.Equal(got, tt.want) {
			t.Errorf("EncodeLength(%d) = %x, want %x", tt.n, got, tt.want)
		}
	}
}

func TestAppendLengthPreservesPrefix(t *testing.T) {
	got := AppendLength([]byte{0x30}, 200)
	want := []byte{0x30, 0x81, 0xc8}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendLength() = %x, want %x", got, want)
	}
}

func TestNull(t *testing.T) {
	if got := Null(); !bytes.Equal(got, []byte{0x05, 0x00}) {
		t.Errorf("Null() = %x, want 0500", got)
	}
}

func TestBitStringUnusedBitsPrefix(t *testing.T) {
	got := BitString([]byte{0xde, 0xad})
	want := []byte{0x03, 0x03, 0x00, 0xde, 0xad}
	if !bytes.Equal(got, want) {
		t.Errorf("BitString() = %x, want %x", got, want)
	}
}

func TestSequenceNesting(t *testing.T) {
	inner := Sequence(Null())
	got := Sequence(inner, Null())
	want := []byte{0x30, 0x06, 0x30, 0x02, 0x05, 0x00, 0x05, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Sequence() = %x, want %x", got, want)
	}
}

func TestWrapPKCS1MatchesX509(t *testing.T) {
	key := testKey(t)

	pkcs1 := x509.MarshalPKCS1PublicKey(&key.PublicKey)
	got := WrapPKCS1(pkcs1)

	want, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey() error = %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("WrapPKCS1() does not match x509 SPKI encoding\ngot  %x\nwant %x", got, want)
	}
}

func TestWrapPKCS1Parses(t *testing.T) {
	key := testKey(t)

	spki := WrapPKCS1(x509.MarshalPKCS1PublicKey(&key.PublicKey))
	parsed, err := x509.ParsePKIXPublicKey(spki)
	if err != nil {
		t.Fatalf("ParsePKIXPublicKey() error = %v", err)
	}

	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		t.Fatalf("parsed key is %T, want *rsa.PublicKey", parsed)
	}
	if rsaKey.N.Cmp(key.PublicKey.N) != 0 || rsaKey.E != key.PublicKey.E {
		t.Error("parsed key does not match original")
	}
}
