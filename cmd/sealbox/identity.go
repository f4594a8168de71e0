package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "provision the local identity keypair",
	Long: `Generates the identity keypair if none exists and prints its
fingerprint and public key. Running init again is harmless: an
installed identity is never replaced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openMessenger()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\n\n%s", m.Fingerprint(), m.PublicKeyPEM())
		return nil
	},
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "print the local identity's fingerprint",
	Long: `Prints the base64 SHA-256 fingerprint of the local public key,
for comparing over a trusted channel with a correspondent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openMessenger()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), m.Fingerprint())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fingerprintCmd)
}
