package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/asc-iap/api/openapi"
	"github.com/donaldgifford/asc-iap/internal/config"
)

func openapiCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the HTTP API OpenAPI document",
		Long:  "Prints the OpenAPI 3.1 document served by 'asc-iap serve' without starting it.",
		Example: `  asc-iap openapi > openapi.yaml
  asc-iap openapi --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := newAPI(echo.New(), config.Default(), nil, nil, nil)
			data, err := openapi.Render(api, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}
