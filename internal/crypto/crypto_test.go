package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"
	"testing"
)

// Two identities shared across the package tests. 2048-bit keys keep the
// suite fast; every operation under test is size-agnostic above the floor.
var (
	keyA *rsa.PrivateKey
	keyB *rsa.PrivateKey
)

func TestMain(m *testing.M) {
	var err error
	if keyA, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
		fmt.Fprintf(os.Stderr, "generate test key A: %v\n", err)
		os.Exit(1)
	}
	if keyB, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
		fmt.Fprintf(os.Stderr, "generate test key B: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
