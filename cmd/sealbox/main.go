// Command sealbox seals and opens copy-paste message envelopes from the
// terminal, using a passphrase-protected on-disk keystore.
package main

func main() {
	Execute()
}
