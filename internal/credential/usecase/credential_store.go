package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	validation "github.com/jellydator/validation"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	credentialService "github.com/allisson/cardguard/internal/credential/service"
	apperrors "github.com/allisson/cardguard/internal/errors"
	appValidation "github.com/allisson/cardguard/internal/validation"
)

// credentialStore keeps both documents in memory behind a single mutex.
// They are loaded on first use and every mutation rewrites the affected document.
type credentialStore struct {
	mu           sync.Mutex
	repo         CredentialRepository
	hasher       credentialService.PinHasher
	pinMinLength int
	logger       *slog.Logger
	now          func() time.Time

	loaded bool
	cards  []*credentialDomain.Card
	pin    credentialDomain.PinCredential
}

// NewCredentialStore creates a CredentialStore backed by repo.
func NewCredentialStore(
	repo CredentialRepository,
	hasher credentialService.PinHasher,
	pinMinLength int,
	logger *slog.Logger,
) CredentialStore {
	return &credentialStore{
		repo:         repo,
		hasher:       hasher,
		pinMinLength: pinMinLength,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *credentialStore) RegisterCard(ctx context.Context, cardID, name string) (bool, error) {
	if err := validation.Validate(cardID, appValidation.CardID...); err != nil {
		return false, credentialDomain.ErrEmptyCardID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return false, err
	}

	if s.indexOf(cardID) >= 0 {
		return false, nil
	}

	if name == "" {
		name = credentialDomain.DefaultCardName(len(s.cards))
	}
	s.cards = append(s.cards, &credentialDomain.Card{
		ID:           cardID,
		Name:         name,
		RegisteredAt: s.now(),
	})

	s.logger.Info("card registered",
		slog.String("card", credentialDomain.MaskCardID(cardID)),
		slog.String("name", name),
	)

	return true, s.saveCards(ctx)
}

func (s *credentialStore) UnregisterCard(ctx context.Context, cardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return false, err
	}

	i := s.indexOf(cardID)
	if i < 0 {
		return false, nil
	}
	return true, s.removeAt(ctx, i)
}

func (s *credentialStore) IsRegistered(ctx context.Context, cardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return false, err
	}
	return s.indexOf(cardID) >= 0, nil
}

func (s *credentialStore) ListCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	cards := make([]*credentialDomain.Card, 0, len(s.cards))
	for _, card := range s.cards {
		c := *card
		cards = append(cards, &c)
	}
	return cards, nil
}

func (s *credentialStore) RemoveFirstCard(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return false, err
	}

	if len(s.cards) == 0 {
		return false, nil
	}
	return true, s.removeAt(ctx, 0)
}

func (s *credentialStore) SetPin(ctx context.Context, pin string) error {
	if err := validation.Validate(pin, appValidation.PinLength{MinLength: s.pinMinLength}); err != nil {
		return apperrors.Wrap(credentialDomain.ErrInvalidPin, err.Error())
	}

	// Argon2id is deliberately slow; hash before taking the lock.
	hash, err := s.hasher.Hash(pin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	s.pin = credentialDomain.PinCredential{Enabled: true, Hash: hash}
	s.logger.Info("pin protection enabled")

	return s.savePin(ctx)
}

func (s *credentialStore) VerifyPin(ctx context.Context, pin string) (bool, error) {
	s.mu.Lock()
	if err := s.load(ctx); err != nil {
		s.mu.Unlock()
		return false, err
	}
	current := s.pin
	s.mu.Unlock()

	if !current.Enabled {
		return true, nil
	}
	return s.hasher.Verify(pin, current.Hash), nil
}

func (s *credentialStore) DisablePin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	s.pin = *credentialDomain.Disabled()
	s.logger.Info("pin protection disabled")

	return s.savePin(ctx)
}

func (s *credentialStore) HasPin(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return false, err
	}
	return s.pin.Enabled, nil
}

// load reads both documents once. Corrupt documents are replaced by their defaults;
// any other failure leaves the store unloaded so the next call retries.
func (s *credentialStore) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	cards, err := s.repo.LoadCards(ctx)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrCorrupt) {
			return apperrors.Storage(err, "failed to load card registry")
		}
		s.logger.Warn("card registry is corrupt, starting with no registered cards", slog.Any("error", err))
		cards = nil
	}

	pin, err := s.repo.LoadPin(ctx)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrCorrupt) {
			return apperrors.Storage(err, "failed to load pin credential")
		}
		s.logger.Warn("pin credential is corrupt, pin protection disabled", slog.Any("error", err))
		pin = nil
	}
	if pin == nil {
		pin = credentialDomain.Disabled()
	}
	if !pin.Enabled {
		pin.Hash = ""
	}

	// Cards from older documents may carry an unreadable registration time.
	loadedAt := s.now()
	for _, card := range cards {
		if card.RegisteredAt.IsZero() {
			card.RegisteredAt = loadedAt
		}
	}

	s.cards = cards
	s.pin = *pin
	s.loaded = true
	return nil
}

func (s *credentialStore) indexOf(cardID string) int {
	return slices.IndexFunc(s.cards, func(c *credentialDomain.Card) bool {
		return c.ID == cardID
	})
}

func (s *credentialStore) removeAt(ctx context.Context, i int) error {
	removed := s.cards[i]
	s.cards = slices.Delete(s.cards, i, i+1)

	s.logger.Info("card unregistered", slog.String("card", credentialDomain.MaskCardID(removed.ID)))

	return s.saveCards(ctx)
}

func (s *credentialStore) saveCards(ctx context.Context) error {
	if err := s.repo.SaveCards(ctx, s.cards); err != nil {
		s.logger.Error("failed to persist card registry", slog.Any("error", err))
		return apperrors.Storage(err, "failed to persist card registry")
	}
	return nil
}

func (s *credentialStore) savePin(ctx context.Context) error {
	pin := s.pin
	if err := s.repo.SavePin(ctx, &pin); err != nil {
		s.logger.Error("failed to persist pin credential", slog.Any("error", err))
		return apperrors.Storage(err, "failed to persist pin credential")
	}
	return nil
}
