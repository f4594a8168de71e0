// Package sealbox lets two parties exchange confidential, authenticated
// messages without a server or a pre-shared secret. Messages are sealed
// into self-contained envelopes - hybrid RSA-OAEP key wrapping around
// AES-256-GCM, signed with RSA-PSS - and travel as plain text the users
// copy and paste themselves.
//
// Basic usage:
//
//	messenger, err := sealbox.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Seal a message. With no known correspondent yet, it is
//	// encrypted to our own key.
//	text, err := messenger.Encrypt(ctx, []byte("hello"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Open a pasted envelope; the sender's verified identity rides along.
//	msg, err := messenger.Decrypt(ctx, text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("from %s: %s\n", msg.SenderFingerprint, msg.Plaintext)
//
// After a successful Decrypt the sender becomes the current correspondent,
// and subsequent Encrypt calls with no explicit recipient target them.
package sealbox
