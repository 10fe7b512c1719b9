package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
)

// RunSetPin enables PIN protection with pin. When pin is empty it is read from io.Reader
// after a prompt on io.Writer, so it does not end up in shell history.
func RunSetPin(
	ctx context.Context,
	store credentialUseCase.CredentialStore,
	logger *slog.Logger,
	pin string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if pin == "" {
		var err error
		pin, err = promptForPin(io)
		if err != nil {
			return fmt.Errorf("failed to read pin: %w", err)
		}
	}

	if err := store.SetPin(ctx, pin); err != nil {
		return fmt.Errorf("failed to set pin: %w", err)
	}

	logger.Info("pin protection enabled")

	if format == FormatJSON {
		return writeJSON(io.Writer, map[string]any{"pin_enabled": true})
	}
	_, err := fmt.Fprintln(io.Writer, "PIN protection enabled")
	return err
}

// RunDisablePin turns PIN protection off.
func RunDisablePin(
	ctx context.Context,
	store credentialUseCase.CredentialStore,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := store.DisablePin(ctx); err != nil {
		return fmt.Errorf("failed to disable pin: %w", err)
	}

	logger.Info("pin protection disabled")

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"pin_enabled": false})
	}
	_, err := fmt.Fprintln(writer, "PIN protection disabled")
	return err
}

// RunPinStatus reports whether PIN protection is enabled.
func RunPinStatus(
	ctx context.Context,
	store credentialUseCase.CredentialStore,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	enabled, err := store.HasPin(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pin status: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"pin_enabled": enabled})
	}
	if enabled {
		_, err = fmt.Fprintln(writer, "PIN protection is enabled")
	} else {
		_, err = fmt.Fprintln(writer, "PIN protection is disabled")
	}
	return err
}

func promptForPin(io IOTuple) (string, error) {
	if _, err := fmt.Fprint(io.Writer, "Enter PIN: "); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(io.Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no pin provided")
	}

	pin := strings.TrimRight(scanner.Text(), "\r")
	if pin == "" {
		return "", errors.New("no pin provided")
	}
	return pin, nil
}
