package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	authRoot := &cobra.Command{
		Use:   "auth",
		Short: "Check App Store Connect credentials",
	}

	authRoot.AddCommand(
		authVerifyCmd(),
		authTokenCmd(),
	)

	return authRoot
}

func authVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Validate credentials and probe the API",
		Long: "Validates the key ID, issuer ID and private key, signs a token and\n" +
			"makes one lightweight request to App Store Connect.",
		Example: `  asc-iap auth verify
  ASCIAP_CONFIG=prod.yaml asc-iap auth verify`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, _, gw, err := setup()
			if err != nil {
				return err
			}
			if err := gw.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("probing App Store Connect: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credentials for key %s are valid.\n", cfg.ASC.KeyID)
			return nil
		},
	}
}

func authTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token",
		Example: `  curl -H "Authorization: Bearer $(asc-iap auth token)" \
    https://api.appstoreconnect.apple.com/v1/apps`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, tokens, _, err := setup()
			if err != nil {
				return err
			}
			tok, err := tokens.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Value)
			fmt.Fprintf(os.Stderr, "expires at %s\n", tok.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}
