package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/donaldgifford/asc-iap/internal/batch"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printAppsTable(w io.Writer, apps []domain.App) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tBUNDLE ID\tSKU\n")
	for i := range apps {
		tw.writef("%s\t%s\t%s\t%s\n", apps[i].ID, apps[i].Name, apps[i].BundleID, apps[i].SKU)
	}
	return tw.finish()
}

func printTerritoriesTable(w io.Writer, territories []domain.Territory) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCURRENCY\tEXCLUDED\n")
	for i := range territories {
		excluded := ""
		if domain.IsExcludedTerritory(territories[i].ID) {
			excluded = "yes"
		}
		tw.writef("%s\t%s\t%s\n", territories[i].ID, territories[i].Currency, excluded)
	}
	return tw.finish()
}

func printProductsTable(w io.Writer, products []domain.RemoteProduct) error {
	tw := newTabWriter(w)
	tw.writef("ID\tPRODUCT ID\tNAME\tTYPE\tSTATE\tFAMILY\n")
	for i := range products {
		p := &products[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%v\n",
			p.ID,
			p.ProductID,
			truncate(p.ReferenceName, 40),
			p.Type,
			p.State,
			p.FamilyShareable,
		)
	}
	return tw.finish()
}

func printPricesTable(w io.Writer, prices []string) error {
	tw := newTabWriter(w)
	tw.writef("USD\n")
	for _, p := range prices {
		tw.writef("%s\n", p)
	}
	return tw.finish()
}

func printSummary(w io.Writer, s *domain.BatchSummary) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT ID\tRESULT\tMESSAGE\n")
	for i := range s.Outcomes {
		o := &s.Outcomes[i]
		result := "ok"
		if !o.Succeeded {
			result = "FAILED"
		}
		tw.writef("%s\t%s\t%s\n", o.ProductID, result, truncate(o.Message, 80))
	}
	tw.writef("\n")
	tw.writef("Succeeded:\t%d\n", s.Succeeded)
	tw.writef("Failed:\t%d\n", s.Failed)
	if s.Cancelled {
		tw.writef("Cancelled:\tyes\n")
	}
	tw.writef("Duration:\t%s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
	return tw.finish()
}

func printRunsTable(w io.Writer, runs []batch.Snapshot) error {
	tw := newTabWriter(w)
	tw.writef("ID\tAPP\tSTATE\tPROGRESS\tOK\tFAILED\tSTARTED\n")
	for i := range runs {
		r := &runs[i]
		tw.writef("%s\t%s\t%s\t%d/%d\t%d\t%d\t%s\n",
			r.ID,
			r.AppID,
			r.State,
			r.Processed,
			r.Total,
			r.Succeeded,
			r.Failed,
			r.StartedAt.Format(time.DateTime),
		)
	}
	return tw.finish()
}

func printRunDetail(w io.Writer, r *batch.Snapshot) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", r.ID)
	tw.writef("App:\t%s\n", r.AppID)
	tw.writef("State:\t%s\n", r.State)
	tw.writef("Progress:\t%d/%d\n", r.Processed, r.Total)
	if r.Action != "" && r.FinishedAt == nil {
		tw.writef("Current:\t%s\n", r.Action)
	}
	tw.writef("Succeeded:\t%d\n", r.Succeeded)
	tw.writef("Failed:\t%d\n", r.Failed)
	if r.Error != "" {
		tw.writef("Error:\t%s\n", r.Error)
	}
	tw.writef("Started:\t%s\n", r.StartedAt.Format(time.DateTime))
	if r.FinishedAt != nil {
		tw.writef("Finished:\t%s\n", r.FinishedAt.Format(time.DateTime))
	}
	if len(r.Outcomes) > 0 {
		tw.writef("\nPRODUCT ID\tRESULT\tMESSAGE\n")
		for i := range r.Outcomes {
			o := &r.Outcomes[i]
			result := "ok"
			if !o.Succeeded {
				result = "FAILED"
			}
			tw.writef("%s\t%s\t%s\n", o.ProductID, result, truncate(o.Message, 80))
		}
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
