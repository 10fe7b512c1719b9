// Package repository implements blacklist persistence.
package repository

import (
	"context"

	"github.com/allisson/cardguard/internal/storage"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

const blacklistFile = "blacklist.json"

// FileBlacklistRepository stores the blacklist in blacklist.json.
type FileBlacklistRepository struct {
	doc *storage.Document
}

// NewFileBlacklistRepository creates a repository rooted at dir.
func NewFileBlacklistRepository(dir string) *FileBlacklistRepository {
	return &FileBlacklistRepository{doc: storage.NewDocument(dir, blacklistFile)}
}

type blacklistDocument struct {
	BlockedCards    []blockedCardRecord `json:"blocked_cards"`
	BlockedPatterns []string            `json:"blocked_patterns"`
}

type blockedCardRecord struct {
	Hash      string `json:"hash"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// LoadBlacklist reads blacklist.json. Entries without a hash and repeated hashes are dropped.
func (f *FileBlacklistRepository) LoadBlacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	var doc blacklistDocument
	if _, err := f.doc.Read(&doc); err != nil {
		return nil, err
	}

	blacklist := &threatDomain.Blacklist{
		Entries:  make([]*threatDomain.BlacklistEntry, 0, len(doc.BlockedCards)),
		Patterns: make([]string, 0, len(doc.BlockedPatterns)),
	}
	for _, record := range doc.BlockedCards {
		if record.Hash == "" || blacklist.Find(record.Hash) != nil {
			continue
		}
		createdAt, _ := storage.ParseTime(record.Timestamp)
		blacklist.Entries = append(blacklist.Entries, &threatDomain.BlacklistEntry{
			Hash:      record.Hash,
			Reason:    record.Reason,
			CreatedAt: createdAt,
		})
	}
	for _, pattern := range doc.BlockedPatterns {
		if !blacklist.HasPattern(pattern) {
			blacklist.Patterns = append(blacklist.Patterns, pattern)
		}
	}
	return blacklist, nil
}

// SaveBlacklist rewrites blacklist.json.
func (f *FileBlacklistRepository) SaveBlacklist(ctx context.Context, blacklist *threatDomain.Blacklist) error {
	doc := blacklistDocument{
		BlockedCards:    make([]blockedCardRecord, 0, len(blacklist.Entries)),
		BlockedPatterns: make([]string, 0, len(blacklist.Patterns)),
	}
	for _, entry := range blacklist.Entries {
		doc.BlockedCards = append(doc.BlockedCards, blockedCardRecord{
			Hash:      entry.Hash,
			Reason:    entry.Reason,
			Timestamp: storage.FormatTime(entry.CreatedAt),
		})
	}
	doc.BlockedPatterns = append(doc.BlockedPatterns, blacklist.Patterns...)
	return f.doc.Write(&doc)
}
