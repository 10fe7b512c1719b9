package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
	threatUseCase "github.com/allisson/cardguard/internal/threat/usecase"
)

// RunBlacklistAdd blocks the fingerprint of cardData.
func RunBlacklistAdd(
	ctx context.Context,
	detector threatUseCase.ThreatDetector,
	logger *slog.Logger,
	writer io.Writer,
	cardData string,
	reason string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	added, err := detector.AddToBlacklist(ctx, cardData, reason)
	if err != nil {
		return fmt.Errorf("failed to blacklist card: %w", err)
	}

	hash := threatDomain.Fingerprint(cardData)
	logger.Info("blacklist add completed", slog.String("fingerprint", hash), slog.Bool("added", added))

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"fingerprint": hash,
			"added":       added,
		})
	}
	if added {
		_, err = fmt.Fprintf(writer, "Card blacklisted (fingerprint %s)\n", hash)
	} else {
		_, err = fmt.Fprintf(writer, "Card is already blacklisted (fingerprint %s)\n", hash)
	}
	return err
}

// RunBlacklistRemove unblocks cardData. Removing a card that is not blocked succeeds.
func RunBlacklistRemove(
	ctx context.Context,
	detector threatUseCase.ThreatDetector,
	writer io.Writer,
	cardData string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := detector.RemoveFromBlacklist(ctx, cardData); err != nil {
		return fmt.Errorf("failed to remove card from blacklist: %w", err)
	}

	hash := threatDomain.Fingerprint(cardData)
	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"fingerprint": hash, "removed": true})
	}
	_, err := fmt.Fprintf(writer, "Card removed from blacklist (fingerprint %s)\n", hash)
	return err
}

// RunBlacklistClear removes every blocked fingerprint and user pattern.
func RunBlacklistClear(
	ctx context.Context,
	detector threatUseCase.ThreatDetector,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := detector.ClearBlacklist(ctx); err != nil {
		return fmt.Errorf("failed to clear blacklist: %w", err)
	}

	logger.Info("blacklist cleared from cli")

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"cleared": true})
	}
	_, err := fmt.Fprintln(writer, "Blacklist cleared")
	return err
}

type blacklistEntryOutput struct {
	Fingerprint string    `json:"fingerprint"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunBlacklistList prints blocked fingerprints followed by user patterns.
func RunBlacklistList(
	ctx context.Context,
	detector threatUseCase.ThreatDetector,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	blacklist, err := detector.Blacklist(ctx)
	if err != nil {
		return fmt.Errorf("failed to read blacklist: %w", err)
	}

	if format == FormatJSON {
		entries := make([]blacklistEntryOutput, 0, len(blacklist.Entries))
		for _, entry := range blacklist.Entries {
			entries = append(entries, blacklistEntryOutput{
				Fingerprint: entry.Hash,
				Reason:      entry.Reason,
				CreatedAt:   entry.CreatedAt,
			})
		}
		patterns := blacklist.Patterns
		if patterns == nil {
			patterns = []string{}
		}
		return writeJSON(writer, map[string]any{
			"entries":  entries,
			"patterns": patterns,
		})
	}

	fmt.Fprintf(writer, "Blacklisted cards: %d\n", len(blacklist.Entries))
	for _, entry := range blacklist.Entries {
		fmt.Fprintf(writer, "  %s\t%s\t%s\n", entry.Hash, entry.Reason, entry.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(writer, "Suspicious patterns: %d\n", len(blacklist.Patterns))
	for _, pattern := range blacklist.Patterns {
		fmt.Fprintf(writer, "  %s\n", pattern)
	}
	return nil
}

// RunAddPattern adds a user pattern matched case-insensitively as a substring.
func RunAddPattern(
	ctx context.Context,
	detector threatUseCase.ThreatDetector,
	writer io.Writer,
	pattern string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := detector.AddSuspiciousPattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to add pattern: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"pattern": pattern})
	}
	_, err := fmt.Fprintf(writer, "Pattern %q added\n", pattern)
	return err
}

// RunCheckCard classifies cardData without changing any state.
func RunCheckCard(
	ctx context.Context,
	detector threatUseCase.ThreatDetector,
	writer io.Writer,
	cardData string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	verdict, err := detector.Classify(ctx, cardData)
	if err != nil {
		return fmt.Errorf("failed to check card: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"suspicious": verdict.Suspicious,
			"rule":       string(verdict.Rule),
			"match":      verdict.Match,
		})
	}

	if !verdict.Suspicious {
		_, err = fmt.Fprintln(writer, "Card data looks clean")
		return err
	}
	if verdict.Match != "" {
		_, err = fmt.Fprintf(writer, "Card data is suspicious (%s: %s)\n", verdict.Rule, verdict.Match)
	} else {
		_, err = fmt.Fprintf(writer, "Card data is suspicious (%s)\n", verdict.Rule)
	}
	return err
}
