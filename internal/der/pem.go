package der

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrBadPEM is returned when PEM armor is missing, mislabelled, or its body
// does not decode.
var ErrBadPEM = errors.New("malformed PEM block")

// PEM labels understood by ParsePublicKey.
const (
	LabelPublicKey    = "PUBLIC KEY"
	LabelRSAPublicKey = "RSA PUBLIC KEY"
	LabelCertificate  = "CERTIFICATE"
)

const pemLineLength = 64

// Encode armors der under the given label with a 64-column base64 body.
func Encode(der []byte, label string) string {
	body := base64.StdEncoding.EncodeToString(der)

	var b strings.Builder
	fmt.Fprintf(&b, "-----BEGIN %s-----\n", label)
	for len(body) > pemLineLength {
		b.WriteString(body[:pemLineLength])
		b.WriteByte('\n')
		body = body[pemLineLength:]
	}
	if len(body) > 0 {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "-----END %s-----\n", label)

	return b.String()
}

// Decode recovers the DER bytes armored under label. The body may use CRLF
// or LF line endings; any character outside the base64 alphabet is dropped
// before decoding.
func Decode(text []byte, label string) ([]byte, error) {
	found, der, err := decodeAny(text)
	if err != nil {
		return nil, err
	}
	if found != label {
		return nil, fmt.Errorf("%w: unexpected label %q, want %q", ErrBadPEM, found, label)
	}
	return der, nil
}

// decodeAny extracts the first PEM block from text regardless of its label.
func decodeAny(text []byte) (label string, der []byte, err error) {
	s := string(text)

	begin := strings.Index(s, "-----BEGIN ")
	if begin < 0 {
		return "", nil, fmt.Errorf("%w: missing BEGIN marker", ErrBadPEM)
	}
	s = s[begin+len("-----BEGIN "):]

	end := strings.Index(s, "-----")
	if end < 0 {
		return "", nil, fmt.Errorf("%w: unterminated BEGIN marker", ErrBadPEM)
	}
	label = s[:end]
	s = s[end+len("-----"):]

	stop := strings.Index(s, "-----END "+label+"-----")
	if stop < 0 {
		return "", nil, fmt.Errorf("%w: missing END marker for %q", ErrBadPEM, label)
	}

	der, err = base64.StdEncoding.DecodeString(filterBase64(s[:stop]))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadPEM, err)
	}
	return label, der, nil
}

// filterBase64 drops every character outside the standard base64 alphabet.
func filterBase64(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z',
			r >= '0' && r <= '9', r == '+', r == '/', r == '=':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParsePublicKey parses an RSA public key from PEM text. The block label
// selects the interpretation:
//
//   - CERTIFICATE: an X.509 certificate whose embedded SPKI key is extracted
//   - PUBLIC KEY: a SubjectPublicKeyInfo structure
//   - RSA PUBLIC KEY: a PKCS#1 RSAPublicKey, wrapped via WrapPKCS1
//
// Any other label fails with ErrBadPEM. Only RSA keys are accepted.
func ParsePublicKey(text []byte) (*rsa.PublicKey, error) {
	label, derBytes, err := decodeAny(text)
	if err != nil {
		return nil, err
	}

	switch label {
	case LabelCertificate:
		cert, err := x509.ParseCertificate(derBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse certificate: %v", ErrBadPEM, err)
		}
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: certificate key is %T, not RSA", ErrBadPEM, cert.PublicKey)
		}
		return pub, nil

	case LabelPublicKey:
		return parseSPKI(derBytes)

	case LabelRSAPublicKey:
		return parseSPKI(WrapPKCS1(derBytes))

	default:
		return nil, fmt.Errorf("%w: unsupported label %q", ErrBadPEM, label)
	}
}

func parseSPKI(derBytes []byte) (*rsa.PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(derBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse public key: %v", ErrBadPEM, err)
	}
	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key is %T, not RSA", ErrBadPEM, pub)
	}
	return rsaKey, nil
}
