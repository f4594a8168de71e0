package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	sealbox "github.com/sealbox/sealbox-go"
)

var (
	encryptInput     string
	encryptRecipient string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "seal a message into envelope text",
	Long: `Reads plaintext from stdin (or --in) and prints the envelope text
to paste to the correspondent. With no --to, the message is sealed
for this identity itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plaintext, err := readInput(encryptInput)
		if err != nil {
			return err
		}

		m, err := openMessenger()
		if err != nil {
			return err
		}

		var opts []sealbox.EncryptOption
		if encryptRecipient != "" {
			pem, err := os.ReadFile(encryptRecipient)
			if err != nil {
				return fmt.Errorf("read recipient key: %w", err)
			}
			opts = append(opts, sealbox.WithRecipientPEM(pem))
		}

		text, err := m.Encrypt(cmd.Context(), plaintext, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVarP(
		&encryptInput,
		"in",
		"i",
		"",
		"Read plaintext from this file instead of stdin.",
	)
	encryptCmd.Flags().StringVarP(
		&encryptRecipient,
		"to",
		"t",
		"",
		"PEM file with the recipient's public key.",
	)
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
