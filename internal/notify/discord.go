package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/asc-iap/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // every item created
	colorYellow = 0xF1C40F // some items failed
	colorOrange = 0xE67E22 // cancelled
	colorRed    = 0xE74C3C // run error or nothing created
)

// maxListedFailures caps the failures written into one embed description.
const maxListedFailures = 10

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// NotifyRun sends report as a single Discord embed.
func (d *DiscordNotifier) NotifyRun(ctx context.Context, report *RunReport) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(report)},
	}
	if err := d.post(ctx, payload); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return err
	}
	return nil
}

func buildEmbed(report *RunReport) discordEmbed {
	s := &report.Summary
	if report.Err != "" {
		return discordEmbed{
			Title:       fmt.Sprintf("Batch failed: app %s", report.AppID),
			Color:       colorRed,
			Description: report.Err,
			Fields: []discordEmbedField{
				{Name: "Run", Value: report.RunID, Inline: true},
			},
		}
	}

	title := fmt.Sprintf("Batch finished: app %s", report.AppID)
	if s.Cancelled {
		title = fmt.Sprintf("Batch cancelled: app %s", report.AppID)
	}

	embed := discordEmbed{
		Title: title,
		Color: summaryColor(s.Succeeded, s.Failed, s.Cancelled),
		Fields: []discordEmbedField{
			{Name: "Run", Value: report.RunID, Inline: true},
			{Name: "Succeeded", Value: fmt.Sprintf("%d", s.Succeeded), Inline: true},
			{Name: "Failed", Value: fmt.Sprintf("%d", s.Failed), Inline: true},
			{Name: "Duration", Value: s.FinishedAt.Sub(s.StartedAt).Round(time.Second).String(), Inline: true},
		},
		Description: failureList(report),
	}
	if !s.FinishedAt.IsZero() {
		embed.Timestamp = s.FinishedAt.UTC().Format(time.RFC3339)
	}
	return embed
}

// failureList renders up to maxListedFailures failed products, one per line.
func failureList(report *RunReport) string {
	var b strings.Builder
	listed := 0
	for _, o := range report.Summary.Outcomes {
		if o.Succeeded {
			continue
		}
		if listed == maxListedFailures {
			fmt.Fprintf(&b, "... and %d more", report.Summary.Failed-listed)
			break
		}
		fmt.Fprintf(&b, "`%s`: %s\n", o.ProductID, o.Message)
		listed++
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func summaryColor(succeeded, failed int, cancelled bool) int {
	switch {
	case succeeded == 0 && failed > 0:
		return colorRed
	case cancelled:
		return colorOrange
	case failed > 0:
		return colorYellow
	default:
		return colorGreen
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
