// Package repository implements locked resource persistence.
package repository

import (
	"context"
	"time"

	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
	"github.com/allisson/cardguard/internal/storage"
)

const lockedAppsFile = "locked_apps.json"

// FileLockedResourceRepository stores the locked set in locked_apps.json as a list of
// {path, name} objects. locked_at is optional so older documents still load.
type FileLockedResourceRepository struct {
	doc *storage.Document
}

// NewFileLockedResourceRepository creates a repository rooted at dir.
func NewFileLockedResourceRepository(dir string) *FileLockedResourceRepository {
	return &FileLockedResourceRepository{doc: storage.NewDocument(dir, lockedAppsFile)}
}

type lockedAppRecord struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	LockedAt string `json:"locked_at,omitempty"`
}

// LoadLocked reads locked_apps.json. Entries without a name are keyed by their path;
// entries with neither are dropped.
func (f *FileLockedResourceRepository) LoadLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	var records []lockedAppRecord
	if _, err := f.doc.Read(&records); err != nil {
		return nil, err
	}

	locked := make([]*resourceDomain.LockedResource, 0, len(records))
	for _, record := range records {
		name := record.Name
		if name == "" {
			name = record.Path
		}
		if name == "" {
			continue
		}
		path := record.Path
		if path == "" {
			path = name
		}
		var lockedAt time.Time
		if t, ok := storage.ParseTime(record.LockedAt); ok {
			lockedAt = t
		}
		locked = append(locked, &resourceDomain.LockedResource{Name: name, Path: path, LockedAt: lockedAt})
	}
	return locked, nil
}

// SaveLocked rewrites locked_apps.json.
func (f *FileLockedResourceRepository) SaveLocked(ctx context.Context, locked []*resourceDomain.LockedResource) error {
	records := make([]lockedAppRecord, 0, len(locked))
	for _, l := range locked {
		record := lockedAppRecord{Path: l.Path, Name: l.Name}
		if !l.LockedAt.IsZero() {
			record.LockedAt = storage.FormatTime(l.LockedAt)
		}
		records = append(records, record)
	}
	return f.doc.Write(records)
}
