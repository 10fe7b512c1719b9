package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	accessUseCase "github.com/allisson/cardguard/internal/access/usecase"
	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	resourceUseCase "github.com/allisson/cardguard/internal/resource/usecase"
)

// ErrAccessDenied is returned by RunUnlock after a denial has been printed, so the
// process exits non-zero.
var ErrAccessDenied = errors.New("access denied")

// RunLockApps adds names to the locked set and reports the resources actually locked.
// Names the resolver does not know are reported as skipped.
func RunLockApps(
	ctx context.Context,
	controller accessUseCase.Controller,
	logger *slog.Logger,
	writer io.Writer,
	names []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("at least one resource name is required")
	}

	resources, err := controller.LockApps(ctx, names)
	if err != nil {
		return fmt.Errorf("failed to lock resources: %w", err)
	}

	locked := make([]string, 0, len(resources))
	resolved := make(map[string]bool, len(resources))
	for _, r := range resources {
		locked = append(locked, r.Name)
		resolved[r.Name] = true
	}
	skipped := make([]string, 0)
	for _, name := range names {
		if !resolved[name] && !slices.Contains(skipped, name) {
			skipped = append(skipped, name)
		}
	}

	logger.Info("resources locked from cli",
		slog.Int("requested", len(names)),
		slog.Int("locked", len(locked)),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"locked": locked, "skipped": skipped})
	}

	if len(locked) == 0 {
		_, err = fmt.Fprintln(writer, "No resources locked")
	} else {
		_, err = fmt.Fprintf(writer, "Locked: %s\n", strings.Join(locked, ", "))
	}
	if err != nil || len(skipped) == 0 {
		return err
	}
	_, err = fmt.Fprintf(writer, "Skipped: %s\n", strings.Join(skipped, ", "))
	return err
}

type lockedOutput struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	LockedAt time.Time `json:"locked_at"`
}

// RunListLocked prints the lock state and the locked set in insertion order.
func RunListLocked(
	ctx context.Context,
	registry resourceUseCase.Registry,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	locked, err := registry.ListLocked(ctx)
	if err != nil {
		return fmt.Errorf("failed to list locked resources: %w", err)
	}

	state := accessDomain.Unlocked
	if len(locked) > 0 {
		state = accessDomain.Locked
	}

	if format == FormatJSON {
		out := make([]lockedOutput, 0, len(locked))
		for _, r := range locked {
			out = append(out, lockedOutput{Name: r.Name, Path: r.Path, LockedAt: r.LockedAt})
		}
		return writeJSON(writer, map[string]any{
			"state":     state.String(),
			"resources": out,
		})
	}

	fmt.Fprintf(writer, "State: %s\n", state)
	for _, r := range locked {
		fmt.Fprintf(writer, "  %s\t%s\t%s\n", r.Name, r.Path, r.LockedAt.Format(time.RFC3339))
	}
	return nil
}

// RunUnlock presents cardID (and pin, when not nil) and unlocks every resource, or only
// resource when it is set. A denial is printed and reported as ErrAccessDenied.
func RunUnlock(
	ctx context.Context,
	controller accessUseCase.Controller,
	logger *slog.Logger,
	writer io.Writer,
	cardID string,
	pin *string,
	resource string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var (
		decision accessDomain.Decision
		err      error
	)
	if resource != "" {
		decision, err = controller.AuthorizeUnlockResource(ctx, cardID, pin, resource)
	} else {
		decision, err = controller.AuthorizeUnlock(ctx, cardID, pin)
	}
	if err != nil {
		return fmt.Errorf("failed to authorize unlock: %w", err)
	}

	logger.Info("unlock attempted from cli",
		slog.String("card", credentialDomain.MaskCardID(cardID)),
		slog.String("decision", decision.String()),
	)

	if format == FormatJSON {
		err = writeJSON(writer, map[string]any{
			"decision": decision.String(),
			"granted":  decision.IsGranted(),
		})
	} else if decision.IsGranted() {
		_, err = fmt.Fprintln(writer, "Access granted")
	} else {
		_, err = fmt.Fprintf(writer, "Access denied: %s\n", decision)
	}
	if err != nil {
		return err
	}

	if !decision.IsGranted() {
		return fmt.Errorf("%w: %s", ErrAccessDenied, decision)
	}
	return nil
}
