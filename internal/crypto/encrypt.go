package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/envelope"
)

// Encrypt seals plaintext for the recipient and signs it as the sender.
//
// The pipeline:
//  1. Generate a random 256-bit AES key and 96-bit nonce.
//  2. AES-256-GCM seal the plaintext into the combined blob.
//  3. Wrap the AES key for the recipient with RSA-OAEP-SHA256.
//  4. Sign nonce || combined || sender SPKI DER with RSA-PSS-SHA256.
//  5. Assemble the envelope in one step.
//
// The envelope always embeds the sender's own identity, whoever the
// recipient is; encrypting to one's own key is the ordinary case when no
// correspondent is known yet. The call either returns a complete envelope
// or an error, never a partial one.
func Encrypt(plaintext []byte, sender *rsa.PrivateKey, recipient *rsa.PublicKey) (*envelope.Envelope, error) {
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: generate message key: %v", ErrEncryptionFailed, err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %v", ErrEncryptionFailed, err)
	}

	combined, err := sealAESGCM(key, nonce, plaintext)
	if err != nil {
		return nil, err
	}

	encKey, err := wrapKey(recipient, key)
	if err != nil {
		return nil, err
	}

	senderDER, err := ExportPublicDER(DerivePublicKey(sender))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	senderPEM, err := PublicKeyPEM(DerivePublicKey(sender))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	sig, err := sign(sender, transcript(nonce, combined, senderDER))
	if err != nil {
		return nil, err
	}

	return &envelope.Envelope{
		Alg:        Alg,
		EncKey:     ToBase64(encKey),
		Nonce:      ToBase64(nonce),
		Ciphertext: ToBase64(combined),
		Signature:  ToBase64(sig),
		SenderPub:  senderPEM,
		SenderFp:   Fingerprint(senderDER),
	}, nil
}

// transcript is the exact byte range bound by the envelope signature:
// nonce || combined ciphertext || sender SPKI DER. Including the sender's
// encoding keeps an attacker from detaching the ciphertext and
// re-presenting it under a different claimed identity.
func transcript(nonce, combined, senderDER []byte) []byte {
	msg := make([]byte, 0, len(nonce)+len(combined)+len(senderDER))
	msg = append(msg, nonce...)
	msg = append(msg, combined...)
	msg = append(msg, senderDER...)
	return msg
}
