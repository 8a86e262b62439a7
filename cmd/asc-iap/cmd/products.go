package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Manage existing in-app purchases",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsUpdateCmd(),
		productsDeleteCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <app-id>",
		Short: "List in-app purchases of an app",
		Args:  cobra.ExactArgs(1),
		Example: `  asc-iap products list 1234567890
  asc-iap products list 1234567890 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, _, gw, err := setup()
			if err != nil {
				return err
			}
			products, err := gw.ListProducts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), products)
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No in-app purchases found.")
				return nil
			}
			return printProductsTable(cmd.OutOrStdout(), products)
		},
	}
}

func productsUpdateCmd() *cobra.Command {
	var (
		name            string
		familyShareable bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the reference name or family sharing of a product",
		Args:  cobra.ExactArgs(1),
		Example: `  asc-iap products update 6450000000 --name "Gem Pack (Large)"
  asc-iap products update 6450000000 --name "Gem Pack" --family-shareable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			_, _, _, gw, err := setup()
			if err != nil {
				return err
			}
			p, err := gw.UpdateProduct(cmd.Context(), args[0], name, familyShareable)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s).\n", p.ID, p.ReferenceName)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "reference name (required)")
	cmd.Flags().BoolVar(&familyShareable, "family-shareable", false, "enable family sharing")

	return cmd
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete an in-app purchase",
		Args:    cobra.ExactArgs(1),
		Example: `  asc-iap products delete 6450000000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, _, gw, err := setup()
			if err != nil {
				return err
			}
			if err := gw.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return nil
		},
	}
}
