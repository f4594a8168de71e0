// Package der builds the ASN.1 DER structures used for public key
// interchange and provides the PEM armor around them.
//
// The writer is deliberately small: one length-encoding routine and one
// tagged-element routine, with a helper per construct that
// SubjectPublicKeyInfo needs (SEQUENCE, BIT STRING, OBJECT IDENTIFIER,
// NULL). Its output is verified against crypto/x509 in tests.
package der

// X.690 universal tags used by SubjectPublicKeyInfo.
const (
	tagSequence  = 0x30
	tagBitString = 0x03
	tagOID       = 0x06
	tagNull      = 0x05
)

// rsaEncryptionOID is the encoded content of OID 1.2.840.113549.1.1.1
// (rsaEncryption).
var rsaEncryptionOID = []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01}

// AppendLength appends the X.690 DER length octets for n to dst: short form
// (single byte) for n < 128, long form (0x80 | byte count, then big-endian
// length bytes) otherwise.
func AppendLength(dst []byte, n int) []byte {
	if n < 0x80 {
		return append(dst, byte(n))
	}

	var buf [8]byte
	i := len(buf)
	for v := n; v > 0; v >>= 8 {
		i--
		buf[i] = byte(v)
	}

	dst = append(dst, 0x80|byte(len(buf)-i))
	return append(dst, buf[i:]...)
}

// EncodeLength returns the DER length octets for n.
func EncodeLength(n int) []byte {
	return AppendLength(nil, n)
}

// element assembles tag || length || content.
func element(tag byte, content []byte) []byte {
	out := make([]byte, 0, len(content)+10)
	out = append(out, tag)
	out = AppendLength(out, len(content))
	return append(out, content...)
}

// Sequence concatenates the children and wraps them in a SEQUENCE.
func Sequence(children ...[]byte) []byte {
	var content []byte
	for _, c := range children {
		content = append(content, c...)
	}
	return element(tagSequence, content)
}

// BitString wraps data in a BIT STRING with a zero unused-bits prefix byte.
func BitString(data []byte) []byte {
	content := make([]byte, 0, len(data)+1)
	content = append(content, 0x00)
	content = append(content, data...)
	return element(tagBitString, content)
}

// ObjectIdentifier wraps pre-encoded OID content bytes in an OBJECT
// IDENTIFIER element.
func ObjectIdentifier(encoded []byte) []byte {
	return element(tagOID, encoded)
}

// Null returns the DER NULL element.
func Null() []byte {
	return []byte{tagNull, 0x00}
}

// WrapPKCS1 wraps a PKCS#1 RSAPublicKey encoding in a SubjectPublicKeyInfo
// structure: an AlgorithmIdentifier SEQUENCE for rsaEncryption with NULL
// parameters, followed by the key bytes in a BIT STRING, inside the outer
// SEQUENCE.
func WrapPKCS1(pkcs1 []byte) []byte {
	algorithm := Sequence(ObjectIdentifier(rsaEncryptionOID), Null())
	return Sequence(algorithm, BitString(pkcs1))
}
