// Package repository implements launch statistics persistence.
package repository

import (
	"context"
	"time"

	"github.com/allisson/cardguard/internal/storage"
	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

const usageDataFile = "usage_data.json"

// FileStatsRepository stores statistics in usage_data.json.
type FileStatsRepository struct {
	doc *storage.Document
}

// NewFileStatsRepository creates a repository rooted at dir.
func NewFileStatsRepository(dir string) *FileStatsRepository {
	return &FileStatsRepository{doc: storage.NewDocument(dir, usageDataFile)}
}

type usageRecord struct {
	TotalLaunches int      `json:"total_launches"`
	FirstLaunch   string   `json:"first_launch"`
	LastLaunch    *string  `json:"last_launch"`
	LaunchHistory []string `json:"launch_history"`
}

// LoadStats reads usage_data.json. Unreadable timestamps in the history are skipped.
func (f *FileStatsRepository) LoadStats(ctx context.Context) (*usageDomain.Stats, error) {
	var record usageRecord
	found, err := f.doc.Read(&record)
	if err != nil || !found {
		return nil, err
	}

	stats := &usageDomain.Stats{
		TotalLaunches: max(record.TotalLaunches, 0),
		History:       make([]time.Time, 0, len(record.LaunchHistory)),
	}
	if t, ok := storage.ParseTime(record.FirstLaunch); ok {
		stats.FirstLaunch = t
	}
	if record.LastLaunch != nil {
		if t, ok := storage.ParseTime(*record.LastLaunch); ok {
			stats.LastLaunch = t
		}
	}
	for _, s := range record.LaunchHistory {
		if t, ok := storage.ParseTime(s); ok {
			stats.History = append(stats.History, t)
		}
	}
	return stats, nil
}

// SaveStats rewrites usage_data.json. A zero LastLaunch is written as null.
func (f *FileStatsRepository) SaveStats(ctx context.Context, stats *usageDomain.Stats) error {
	record := usageRecord{
		TotalLaunches: stats.TotalLaunches,
		FirstLaunch:   storage.FormatTime(stats.FirstLaunch),
		LaunchHistory: make([]string, 0, len(stats.History)),
	}
	if !stats.LastLaunch.IsZero() {
		last := storage.FormatTime(stats.LastLaunch)
		record.LastLaunch = &last
	}
	for _, t := range stats.History {
		record.LaunchHistory = append(record.LaunchHistory, storage.FormatTime(t))
	}
	return f.doc.Write(record)
}
