package der

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key := testKey(t)
	spki, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey() error = %v", err)
	}

	pem := Encode(spki, LabelPublicKey)
	got, err := Decode([]byte(pem), LabelPublicKey)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, spki) {
		t.Error("Decode(Encode(der)) != der")
	}
}

func TestEncodeLineWidth(t *testing.T) {
	pem := Encode(make([]byte, 300), LabelPublicKey)
	for _, line := range strings.Split(pem, "\n") {
		if len(line) > 64 && !strings.HasPrefix(line, "-----") {
			t.Errorf("body line exceeds 64 columns: %q", line)
		}
	}
}

func TestDecodeToleratesCRLF(t *testing.T) {
	pem := Encode([]byte("hello envelope"), LabelPublicKey)
	crlf := strings.ReplaceAll(pem, "\n", "\r\n")

	got, err := Decode([]byte(crlf), LabelPublicKey)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got) != "hello envelope" {
		t.Errorf("Decode() = %q, want %q", got, "hello envelope")
	}
}

func TestDecodeStripsStrayCharacters(t *testing.T) {
	pem := Encode([]byte("payload"), LabelPublicKey)
	noisy := strings.Replace(pem, "-----\n", "-----\n\t ", 1)

	got, err := Decode([]byte(noisy), LabelPublicKey)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("Decode() = %q, want %q", got, "payload")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"no begin marker", "not a pem block"},
		{"unterminated begin", "-----BEGIN PUBLIC KEY"},
		{"missing end marker", "-----BEGIN PUBLIC KEY-----\nQUJD\n"},
		{"undecodable body", "-----BEGIN PUBLIC KEY-----\n====\n-----END PUBLIC KEY-----\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.text), LabelPublicKey); !errors.Is(err, ErrBadPEM) {
				t.Errorf("Decode() error = %v, want ErrBadPEM", err)
			}
		})
	}
}

func TestDecodeLabelMismatch(t *testing.T) {
	pem := Encode([]byte("abc"), LabelRSAPublicKey)
	if _, err := Decode([]byte(pem), LabelPublicKey); !errors.Is(err, ErrBadPEM) {
		t.Errorf("Decode() error = %v, want ErrBadPEM", err)
	}
}

func TestParsePublicKeySPKI(t *testing.T) {
	key := testKey(t)
	spki, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey() error = %v", err)
	}

	pub, err := ParsePublicKey([]byte(Encode(spki, LabelPublicKey)))
	if err != nil {
		t.Fatalf("ParsePublicKey() error = %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 {
		t.Error("parsed key does not match original")
	}
}

func TestParsePublicKeyPKCS1(t *testing.T) {
	key := testKey(t)
	pkcs1 := x509.MarshalPKCS1PublicKey(&key.PublicKey)

	pub, err := ParsePublicKey([]byte(Encode(pkcs1, LabelRSAPublicKey)))
	if err != nil {
		t.Fatalf("ParsePublicKey() error = %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 {
		t.Error("parsed key does not match original")
	}
}

func TestParsePublicKeyCertificate(t *testing.T) {
	key := testKey(t)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "sealbox test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate() error = %v", err)
	}

	pub, err := ParsePublicKey([]byte(Encode(certDER, LabelCertificate)))
	if err != nil {
		t.Fatalf("ParsePublicKey() error = %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 {
		t.Error("certificate key does not match original")
	}
}

func TestParsePublicKeyUnknownLabel(t *testing.T) {
	pem := Encode([]byte("abc"), "EC PRIVATE KEY")
	if _, err := ParsePublicKey([]byte(pem)); !errors.Is(err, ErrBadPEM) {
		t.Errorf("ParsePublicKey() error = %v, want ErrBadPEM", err)
	}
}

func TestParsePublicKeyRejectsNonRSA(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey() error = %v", err)
	}
	spki, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey() error = %v", err)
	}

	if _, err := ParsePublicKey([]byte(Encode(spki, LabelPublicKey))); !errors.Is(err, ErrBadPEM) {
		t.Errorf("ParsePublicKey() error = %v, want ErrBadPEM", err)
	}
}
