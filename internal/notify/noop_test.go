package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_NotifyRun(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, n.NotifyRun(context.Background(), testReport(2, 1, false)))
}

// compile-time interface checks.
var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
)
