// Package envelope serializes the wire envelope carried between
// correspondents and its outer copy-paste transport encoding.
package envelope

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrBadJSON is returned when envelope text cannot be parsed, a required
// field is missing, or a base64 field is malformed.
var ErrBadJSON = errors.New("malformed envelope")

// Envelope is the wire structure for one message. All fields are required.
// Values are standard base64 except Alg (informational suite name) and
// SenderPub (PEM text). Ciphertext is the nonce-prefixed AEAD output.
type Envelope struct {
	Alg        string `json:"alg"`
	EncKey     string `json:"enc_key"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
	Signature  string `json:"signature"`
	SenderPub  string `json:"sender_pub"`
	SenderFp   string `json:"sender_fp"`
}

// Marshal encodes the envelope as its canonical sharable form: the UTF-8
// JSON object wrapped in standard base64 so it survives copy-paste.
func Marshal(env *Envelope) (string, error) {
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Unmarshal decodes envelope text in either transport form. It first
// attempts to base64-unwrap the input; if the result is not valid UTF-8 or
// the input is not base64 at all, the text is treated as raw JSON directly.
func Unmarshal(text string) (*Envelope, error) {
	raw := []byte(unwrap(text))

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// unwrap removes the outer base64 transport layer when present.
func unwrap(text string) string {
	trimmed := strings.TrimSpace(text)

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil || !utf8.Valid(decoded) {
		return trimmed
	}
	return string(decoded)
}

// validate checks that every required field is present and every base64
// field decodes.
func (e *Envelope) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"alg", e.Alg},
		{"enc_key", e.EncKey},
		{"nonce", e.Nonce},
		{"ciphertext", e.Ciphertext},
		{"signature", e.Signature},
		{"sender_pub", e.SenderPub},
		{"sender_fp", e.SenderFp},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: missing field %q", ErrBadJSON, f.name)
		}
	}

	encoded := []struct {
		name  string
		value string
	}{
		{"enc_key", e.EncKey},
		{"nonce", e.Nonce},
		{"ciphertext", e.Ciphertext},
		{"signature", e.Signature},
		{"sender_fp", e.SenderFp},
	}
	for _, f := range encoded {
		if _, err := base64.StdEncoding.DecodeString(f.value); err != nil {
			return fmt.Errorf("%w: field %q is not valid base64", ErrBadJSON, f.name)
		}
	}
	return nil
}
