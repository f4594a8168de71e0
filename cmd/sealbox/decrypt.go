package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decryptInput string

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "verify and open pasted envelope text",
	Long: `Reads envelope text from stdin (or --in), verifies the sender's
signature, and prints the plaintext. The verified sender fingerprint
goes to stderr so plaintext stays pipeable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(decryptInput)
		if err != nil {
			return err
		}

		m, err := openMessenger()
		if err != nil {
			return err
		}

		msg, err := m.Decrypt(cmd.Context(), string(text))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "sender: %s\n", msg.SenderFingerprint)
		if msg.FingerprintMismatch {
			fmt.Fprintln(cmd.ErrOrStderr(),
				"warning: envelope carried a different fingerprint than the sender's actual key")
		}
		cmd.OutOrStdout().Write(msg.Plaintext)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVarP(
		&decryptInput,
		"in",
		"i",
		"",
		"Read envelope text from this file instead of stdin.",
	)
}
