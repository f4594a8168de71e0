package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	sealbox "github.com/sealbox/sealbox-go"
	"github.com/sealbox/sealbox-go/keystore"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sealbox",
	Short: "serverless confidential messaging over copy-paste",
	Long: `Sealbox seals messages into self-contained signed envelopes that
travel as plain text through whatever channel the users already have.
No server, no account, no pre-shared secret.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; a missing file is not an error.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to the YAML config file.",
	)
}

// openMessenger builds a Messenger over the configured file keystore.
func openMessenger() (*sealbox.Messenger, error) {
	cfg := LoadConfig(configPath)

	store, err := keystore.NewFile(cfg.KeystoreDir, os.Getenv("SEALBOX_PASSPHRASE"))
	if err != nil {
		return nil, fmt.Errorf("open keystore at %s: %w", cfg.KeystoreDir, err)
	}

	return sealbox.Open(
		sealbox.WithKeyStore(store),
		sealbox.WithIdentityTag(cfg.Identity),
	)
}
