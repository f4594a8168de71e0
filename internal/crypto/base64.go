package crypto

import "encoding/base64"

// ToBase64 encodes bytes as standard base64 with padding, the encoding used
// for every binary envelope field.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 with padding.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
