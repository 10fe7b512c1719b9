package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	apperrors "github.com/allisson/cardguard/internal/errors"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

type threatDetector struct {
	mu     sync.Mutex
	repo   BlacklistRepository
	logger *slog.Logger
	now    func() time.Time

	blacklist *threatDomain.Blacklist
}

// NewThreatDetector creates a ThreatDetector backed by repo.
func NewThreatDetector(repo BlacklistRepository, logger *slog.Logger) ThreatDetector {
	return &threatDetector{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (d *threatDetector) IsSuspicious(ctx context.Context, cardData string) (bool, error) {
	verdict, err := d.Classify(ctx, cardData)
	if err != nil {
		return false, err
	}
	return verdict.Suspicious, nil
}

func (d *threatDetector) Classify(ctx context.Context, cardData string) (*threatDomain.Verdict, error) {
	// Empty data and built-in markers never need the blacklist.
	if verdict := threatDomain.Classify(cardData, nil); verdict.Suspicious {
		return &verdict, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.load(ctx); err != nil {
		return nil, err
	}

	verdict := threatDomain.Classify(cardData, d.blacklist)
	return &verdict, nil
}

func (d *threatDetector) AddToBlacklist(ctx context.Context, cardData, reason string) (bool, error) {
	if cardData == "" {
		return false, threatDomain.ErrEmptyCardData
	}
	if strings.TrimSpace(reason) == "" {
		reason = threatDomain.DefaultReason
	}
	hash := threatDomain.Fingerprint(cardData)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.load(ctx); err != nil {
		return false, err
	}

	if d.blacklist.Find(hash) != nil {
		return false, nil
	}

	d.blacklist.Entries = append(d.blacklist.Entries, &threatDomain.BlacklistEntry{
		Hash:      hash,
		Reason:    reason,
		CreatedAt: d.now(),
	})
	d.logger.Info("card blacklisted", slog.String("fingerprint", shortHash(hash)), slog.String("reason", reason))

	return true, d.save(ctx)
}

func (d *threatDetector) RemoveFromBlacklist(ctx context.Context, cardData string) error {
	hash := threatDomain.Fingerprint(cardData)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.load(ctx); err != nil {
		return err
	}

	i := slices.IndexFunc(d.blacklist.Entries, func(e *threatDomain.BlacklistEntry) bool {
		return e.Hash == hash
	})
	if i < 0 {
		return nil
	}

	d.blacklist.Entries = slices.Delete(d.blacklist.Entries, i, i+1)
	d.logger.Info("card removed from blacklist", slog.String("fingerprint", shortHash(hash)))

	return d.save(ctx)
}

func (d *threatDetector) AddSuspiciousPattern(ctx context.Context, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return threatDomain.ErrBlankPattern
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.load(ctx); err != nil {
		return err
	}

	if d.blacklist.HasPattern(pattern) {
		return nil
	}

	d.blacklist.Patterns = append(d.blacklist.Patterns, pattern)
	d.logger.Info("suspicious pattern added", slog.String("pattern", pattern))

	return d.save(ctx)
}

func (d *threatDetector) ClearBlacklist(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.blacklist = &threatDomain.Blacklist{Entries: []*threatDomain.BlacklistEntry{}, Patterns: []string{}}
	d.logger.Info("blacklist cleared")

	return d.save(ctx)
}

func (d *threatDetector) Blacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.load(ctx); err != nil {
		return nil, err
	}
	return d.blacklist.Clone(), nil
}

// load reads the blacklist once. A corrupt document is replaced by an empty blacklist;
// any other failure leaves the detector unloaded so the next call retries.
func (d *threatDetector) load(ctx context.Context) error {
	if d.blacklist != nil {
		return nil
	}

	blacklist, err := d.repo.LoadBlacklist(ctx)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrCorrupt) {
			return apperrors.Storage(err, "failed to load blacklist")
		}
		d.logger.Warn("blacklist is corrupt, starting with an empty blacklist", slog.Any("error", err))
		blacklist = nil
	}
	if blacklist == nil {
		blacklist = &threatDomain.Blacklist{}
	}

	loadedAt := d.now()
	for _, entry := range blacklist.Entries {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = loadedAt
		}
	}

	d.blacklist = blacklist
	return nil
}

func (d *threatDetector) save(ctx context.Context) error {
	if err := d.repo.SaveBlacklist(ctx, d.blacklist.Clone()); err != nil {
		d.logger.Error("failed to persist blacklist", slog.Any("error", err))
		return apperrors.Storage(err, "failed to persist blacklist")
	}
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
