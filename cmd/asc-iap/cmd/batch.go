package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/asc-iap/internal/batch"
	"github.com/donaldgifford/asc-iap/internal/notify"
	"github.com/donaldgifford/asc-iap/internal/productfile"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

func batchCmd() *cobra.Command {
	batchRoot := &cobra.Command{
		Use:   "batch",
		Short: "Create in-app purchases in bulk",
	}

	batchRoot.AddCommand(batchRunCmd())

	return batchRoot
}

type batchRunFlags struct {
	appID        string
	file         string
	screenshot   string
	excludeChina bool
	locales      []string
}

func batchRunCmd() *cobra.Command {
	var f batchRunFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create every product in a file",
		Long: "Creates the products in --file in order. Each product is created, then\n" +
			"priced, localized, made available and given the review screenshot.\n" +
			"Only creation decides success. Ctrl-C stops after the current product.",
		Example: `  asc-iap batch run --app 1234567890 --file products.yaml
  asc-iap batch run --app 1234567890 --file products.json --screenshot review.png
  asc-iap batch run --app 1234567890 --file products.yaml --exclude-china=false --locale en-US --locale ja`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, &f)
		},
	}

	cmd.Flags().StringVar(&f.appID, "app", "", "App Store Connect app ID (required)")
	cmd.Flags().StringVar(&f.file, "file", "", "YAML or JSON product file (required)")
	cmd.Flags().StringVar(&f.screenshot, "screenshot", "", "review screenshot attached to every product")
	cmd.Flags().BoolVar(&f.excludeChina, "exclude-china", true,
		"omit mainland China, Hong Kong, Macau and Taiwan from availability (default from config)")
	cmd.Flags().StringSliceVar(&f.locales, "locale", nil, "localization locale (repeatable, default from config)")
	cobra.CheckErr(cmd.MarkFlagRequired("app"))
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func runBatch(cmd *cobra.Command, f *batchRunFlags) error {
	products, err := productfile.Load(f.file)
	if err != nil {
		return err
	}

	cfg, log, _, gw, err := setup()
	if err != nil {
		return err
	}

	req := batch.Request{
		AppID:        f.appID,
		Products:     products,
		ExcludeChina: cfg.Batch.ExcludeChinaEnabled(),
		Locales:      f.locales,
	}
	if cmd.Flags().Changed("exclude-china") {
		req.ExcludeChina = f.excludeChina
	}
	for _, loc := range req.Locales {
		if _, ok := domain.SupportedLocales[loc]; !ok {
			return fmt.Errorf("unsupported locale %q", loc)
		}
	}
	if f.screenshot != "" {
		data, err := os.ReadFile(f.screenshot) //nolint:gosec // path from trusted CLI flag
		if err != nil {
			return fmt.Errorf("reading screenshot: %w", err)
		}
		req.Screenshot = &batch.Screenshot{Name: filepath.Base(f.screenshot), Data: data}
	}

	orch := batch.NewOrchestrator(gw,
		batch.WithLogger(log),
		batch.WithLocales(cfg.Batch.Locales),
		batch.WithBaseTerritory(cfg.Batch.BaseTerritory),
	)
	run := orch.NewRun(req)

	stop := cancelOnSignal(run, cmd.ErrOrStderr())
	defer stop()

	summary, err := executeWithProgress(cmd.Context(), run, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	report := &notify.RunReport{RunID: "cli", AppID: req.AppID, Summary: summary}
	if err := newNotifier(cfg, log).NotifyRun(context.WithoutCancel(cmd.Context()), report); err != nil {
		log.Warn("run notification failed", "error", err)
	}

	if jsonOutput() {
		if err := outputJSON(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	} else if err := printSummary(cmd.OutOrStdout(), &summary); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d products failed", summary.Failed, summary.Attempted())
	}
	return nil
}

// runner is satisfied by *batch.Run.
type runner interface {
	Execute(ctx context.Context, events chan<- batch.Event) (domain.BatchSummary, error)
	Cancel()
}

// cancelOnSignal cancels run cooperatively on the first SIGINT or SIGTERM.
// The returned func releases the signal handler.
func cancelOnSignal(run runner, w io.Writer) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			fmt.Fprintln(w, "Cancelling after the current product...")
			run.Cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// executeWithProgress runs run and writes one line per event to w.
func executeWithProgress(ctx context.Context, run runner, w io.Writer) (domain.BatchSummary, error) {
	events := make(chan batch.Event)

	type result struct {
		summary domain.BatchSummary
		err     error
	}
	resCh := make(chan result, 1)
	go func() {
		s, err := run.Execute(ctx, events)
		resCh <- result{summary: s, err: err}
	}()

	for ev := range events {
		writeEvent(w, ev)
	}
	res := <-resCh
	return res.summary, res.err
}

func writeEvent(w io.Writer, ev batch.Event) {
	switch e := ev.(type) {
	case batch.ProgressEvent:
		fmt.Fprintf(w, "[%d/%d] %s\n", e.Index, e.Total, e.Action)
	case batch.OutcomeEvent:
		if e.Outcome.Succeeded {
			fmt.Fprintf(w, "[%d] %s: %s\n", e.Index, e.Outcome.ProductID, e.Outcome.Message)
		} else {
			fmt.Fprintf(w, "[%d] %s: FAILED: %s\n", e.Index, e.Outcome.ProductID, e.Outcome.Message)
		}
	case batch.SummaryEvent:
		if e.Summary.Cancelled {
			fmt.Fprintf(w, "Cancelled after %d products.\n", e.Summary.Attempted())
		}
	}
}
