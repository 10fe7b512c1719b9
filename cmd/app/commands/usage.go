package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	usageUseCase "github.com/allisson/cardguard/internal/usage/usecase"
)

// recentLaunchesShown bounds the launches printed in text mode, newest first.
const recentLaunchesShown = 10

// RunUsage prints launch statistics. With reset, the statistics are discarded first.
func RunUsage(
	ctx context.Context,
	counter usageUseCase.Counter,
	logger *slog.Logger,
	writer io.Writer,
	reset bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if reset {
		if err := counter.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset usage statistics: %w", err)
		}
		logger.Info("usage statistics reset")
	}

	stats, err := counter.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to read usage statistics: %w", err)
	}

	if format == FormatJSON {
		out := map[string]any{
			"total_launches":  stats.TotalLaunches,
			"first_launch":    stats.FirstLaunch,
			"last_launch":     nil,
			"recent_launches": stats.RecentLaunches(),
		}
		if !stats.LastLaunch.IsZero() {
			out["last_launch"] = stats.LastLaunch
		}
		return writeJSON(writer, out)
	}

	fmt.Fprintf(writer, "Total launches: %d\n", stats.TotalLaunches)
	fmt.Fprintf(writer, "Tracking since: %s\n", stats.FirstLaunch.Format(time.RFC3339))
	if stats.LastLaunch.IsZero() {
		fmt.Fprintln(writer, "Last launch: never")
	} else {
		fmt.Fprintf(writer, "Last launch: %s\n", stats.LastLaunch.Format(time.RFC3339))
	}
	fmt.Fprintf(writer, "Recent launches: %d\n", stats.RecentLaunches())
	for i := len(stats.History) - 1; i >= 0 && i >= len(stats.History)-recentLaunchesShown; i-- {
		fmt.Fprintf(writer, "  %s\n", stats.History[i].Format(time.RFC3339))
	}
	return nil
}
