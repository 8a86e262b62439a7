package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

func appsCmd() *cobra.Command {
	appsRoot := &cobra.Command{
		Use:   "apps",
		Short: "Inspect apps",
	}

	appsRoot.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List apps visible to the API key",
		Example: `  asc-iap apps list
  asc-iap apps list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, _, gw, err := setup()
			if err != nil {
				return err
			}
			apps, err := gw.ListApps(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), apps)
			}
			if len(apps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No apps found.")
				return nil
			}
			return printAppsTable(cmd.OutOrStdout(), apps)
		},
	})

	return appsRoot
}

func territoriesCmd() *cobra.Command {
	territoriesRoot := &cobra.Command{
		Use:   "territories",
		Short: "Inspect sales territories",
	}

	var excludeChina bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales territories",
		Example: `  asc-iap territories list
  asc-iap territories list --exclude-china`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, _, gw, err := setup()
			if err != nil {
				return err
			}
			territories, err := gw.ListTerritories(cmd.Context())
			if err != nil {
				return err
			}
			if excludeChina {
				territories = domain.FilterExcludedTerritories(territories)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), territories)
			}
			return printTerritoriesTable(cmd.OutOrStdout(), territories)
		},
	}
	list.Flags().BoolVar(&excludeChina, "exclude-china", false,
		"omit mainland China, Hong Kong, Macau and Taiwan")
	territoriesRoot.AddCommand(list)

	return territoriesRoot
}
