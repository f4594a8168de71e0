package crypto

import (
	"crypto/rsa"
	"fmt"

	"github.com/sealbox/sealbox-go/internal/der"
	"github.com/sealbox/sealbox-go/internal/envelope"
)

// Result is returned by Decrypt only on full success.
type Result struct {
	// Plaintext is the recovered message body.
	Plaintext []byte
	// SenderKey is the verified sender public key parsed from the envelope.
	SenderKey *rsa.PublicKey
	// SenderFingerprint is recomputed from SenderKey's DER encoding; the
	// wire sender_fp field is never trusted.
	SenderFingerprint string
	// FingerprintMismatch reports that the wire sender_fp disagreed with
	// the recomputed value. Verification and decryption never depend on the
	// wire field, so the mismatch is surfaced rather than fatal.
	FingerprintMismatch bool
}

// Decrypt verifies and opens an envelope with the recipient's private key.
//
// The pipeline:
//  1. Parse the embedded sender public key from its PEM armor.
//  2. Re-export that key's SPKI DER; this, not the wire fingerprint, is the
//     identity input to verification.
//  3. Verify the RSA-PSS signature over nonce || ciphertext || sender DER.
//     Any mismatch rejects the message before any decryption happens.
//  4. Unwrap the AES key with RSA-OAEP-SHA256.
//  5. Open the combined blob; a tag mismatch fails identically to an
//     unwrap failure.
func Decrypt(env *envelope.Envelope, recipient *rsa.PrivateKey) (*Result, error) {
	senderKey, err := der.ParsePublicKey([]byte(env.SenderPub))
	if err != nil {
		return nil, err
	}
	senderDER, err := ExportPublicDER(senderKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	nonce, err := FromBase64(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: decode nonce: %v", ErrVerificationFailed, err)
	}
	combined, err := FromBase64(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ciphertext: %v", ErrVerificationFailed, err)
	}
	sig, err := FromBase64(env.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: decode signature: %v", ErrVerificationFailed, err)
	}
	encKey, err := FromBase64(env.EncKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode enc_key: %v", ErrDecryptionFailed, err)
	}

	if err := verify(senderKey, transcript(nonce, combined, senderDER), sig); err != nil {
		return nil, err
	}

	key, err := unwrapKey(recipient, encKey)
	if err != nil {
		return nil, err
	}

	plaintext, err := openAESGCM(key, combined)
	if err != nil {
		return nil, err
	}

	fp := Fingerprint(senderDER)
	return &Result{
		Plaintext:           plaintext,
		SenderKey:           senderKey,
		SenderFingerprint:   fp,
		FingerprintMismatch: env.SenderFp != fp,
	}, nil
}
