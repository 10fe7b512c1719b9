package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
)

// RunRegisterCard registers cardID under name. Registering a known card is not an error;
// the output reports that nothing changed.
func RunRegisterCard(
	ctx context.Context,
	store credentialUseCase.CredentialStore,
	logger *slog.Logger,
	writer io.Writer,
	cardID string,
	name string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("registering card", slog.String("card", credentialDomain.MaskCardID(cardID)))

	registered, err := store.RegisterCard(ctx, cardID, name)
	if err != nil {
		return fmt.Errorf("failed to register card: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"card_id":    cardID,
			"registered": registered,
		})
	}

	if registered {
		_, err = fmt.Fprintf(writer, "Card %s registered\n", cardID)
	} else {
		_, err = fmt.Fprintf(writer, "Card %s is already registered\n", cardID)
	}
	return err
}

// RunUnregisterCard removes cardID from the store.
func RunUnregisterCard(
	ctx context.Context,
	store credentialUseCase.CredentialStore,
	logger *slog.Logger,
	writer io.Writer,
	cardID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("unregistering card", slog.String("card", credentialDomain.MaskCardID(cardID)))

	removed, err := store.UnregisterCard(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to unregister card: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"card_id": cardID,
			"removed": removed,
		})
	}

	if removed {
		_, err = fmt.Fprintf(writer, "Card %s unregistered\n", cardID)
	} else {
		_, err = fmt.Fprintf(writer, "Card %s is not registered\n", cardID)
	}
	return err
}

type cardOutput struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RunListCards prints the registered cards in registration order.
func RunListCards(
	ctx context.Context,
	store credentialUseCase.CredentialStore,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	cards, err := store.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if format == FormatJSON {
		out := make([]cardOutput, 0, len(cards))
		for _, card := range cards {
			out = append(out, cardOutput{ID: card.ID, Name: card.Name, RegisteredAt: card.RegisteredAt})
		}
		return writeJSON(writer, map[string]any{"cards": out})
	}

	if len(cards) == 0 {
		_, err = fmt.Fprintln(writer, "No cards registered")
		return err
	}
	for _, card := range cards {
		if _, err := fmt.Fprintf(
			writer,
			"%s\t%s\t%s\n",
			card.ID,
			card.Name,
			card.RegisteredAt.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	return nil
}
