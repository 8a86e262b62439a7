package cmd

import (
	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

func pricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Print common USD price levels",
		Long: "Prints suggested USD prices. Any price may be used in a product file;\n" +
			"it is matched against the price points App Store Connect offers.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), domain.CommonPrices)
			}
			return printPricesTable(cmd.OutOrStdout(), domain.CommonPrices)
		},
	}
}
