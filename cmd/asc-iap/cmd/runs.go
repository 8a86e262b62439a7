package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/asc-iap/internal/api/client"
	"github.com/donaldgifford/asc-iap/internal/batch"
	"github.com/donaldgifford/asc-iap/internal/productfile"
)

func runsCmd() *cobra.Command {
	runsRoot := &cobra.Command{
		Use:   "runs",
		Short: "Manage batch runs on an asc-iap server",
		Long: "Start, inspect and cancel batch runs executed by a running\n" +
			"'asc-iap serve' instance (see --server).",
	}

	runsRoot.AddCommand(
		runsStartCmd(),
		runsGetCmd(),
		runsListCmd(),
		runsCancelCmd(),
	)

	return runsRoot
}

func runsStartCmd() *cobra.Command {
	var (
		appID        string
		file         string
		screenshot   string
		excludeChina bool
		locales      []string
		wait         bool
		pollInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a batch run on the server",
		Example: `  asc-iap runs start --app 1234567890 --file products.yaml
  asc-iap runs start --app 1234567890 --file products.yaml --screenshot /srv/shots/review.png --wait`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := productfile.Load(file)
			if err != nil {
				return err
			}

			req := &apiclient.StartBatchRequest{
				AppID:    appID,
				Products: products,
				Locales:  locales,
			}
			if cmd.Flags().Changed("exclude-china") {
				req.ExcludeChina = &excludeChina
			}
			if screenshot != "" {
				abs, err := filepath.Abs(screenshot)
				if err != nil {
					return err
				}
				req.ScreenshotPath = abs
			}

			c := newAPIClient()
			id, err := c.StartBatch(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !wait {
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), map[string]string{"id": id})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Started run %s.\n", id)
				return nil
			}

			ticker := time.NewTicker(pollInterval)
			defer ticker.Stop()
			for {
				snap, err := c.GetBatch(cmd.Context(), id)
				if err != nil {
					return err
				}
				if snap.State != batch.StateRunning && snap.State != batch.StateIdle {
					if jsonOutput() {
						return outputJSON(cmd.OutOrStdout(), snap)
					}
					return printRunDetail(cmd.OutOrStdout(), snap)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s\n", snap.Processed, snap.Total, snap.Action)

				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().StringVar(&appID, "app", "", "App Store Connect app ID (required)")
	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON product file (required)")
	cmd.Flags().StringVar(&screenshot, "screenshot", "", "review screenshot path readable by the server")
	cmd.Flags().BoolVar(&excludeChina, "exclude-china", true, "omit mainland China, Hong Kong, Macau and Taiwan (default from server config)")
	cmd.Flags().StringSliceVar(&locales, "locale", nil, "localization locale (repeatable)")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the run finishes")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 2*time.Second, "poll interval for --wait")
	cobra.CheckErr(cmd.MarkFlagRequired("app"))
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func runsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a batch run",
		Args:  cobra.ExactArgs(1),
		Example: `  asc-iap runs get 6f1c2f0e-6a7b-4c1e-9a59-5f7cf4b1e3a2
  asc-iap runs get 6f1c2f0e-6a7b-4c1e-9a59-5f7cf4b1e3a2 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := newAPIClient().GetBatch(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), snap)
			}
			return printRunDetail(cmd.OutOrStdout(), snap)
		},
	}
}

func runsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List batch runs",
		Example: `  asc-iap runs list
  asc-iap runs list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := newAPIClient().ListBatches(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No batch runs found.")
				return nil
			}
			return printRunsTable(cmd.OutOrStdout(), runs)
		},
	}
}

func runsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cancel <id>",
		Short:   "Cancel a batch run after its current product",
		Args:    cobra.ExactArgs(1),
		Example: `  asc-iap runs cancel 6f1c2f0e-6a7b-4c1e-9a59-5f7cf4b1e3a2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().CancelBatch(cmd.Context(), args[0]); err != nil {
				return notFound(err, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancellation requested for %s.\n", args[0])
			return nil
		},
	}
}

func notFound(err error, id string) error {
	if apiclient.IsNotFound(err) {
		return errors.New("no batch run with id " + id)
	}
	return err
}
