// Package domain defines launch statistics.
package domain

import (
	"slices"
	"time"
)

// HistoryLimit caps the number of launch timestamps kept in History.
const HistoryLimit = 100

// Stats tracks how often the engine has been launched. LastLaunch is zero until the
// first launch is recorded. History holds the most recent launches, oldest first.
type Stats struct {
	TotalLaunches int
	FirstLaunch   time.Time
	LastLaunch    time.Time
	History       []time.Time
}

// NewStats returns empty statistics whose tracking started at now.
func NewStats(now time.Time) *Stats {
	return &Stats{FirstLaunch: now, History: []time.Time{}}
}

// Record counts one launch at now and trims History to HistoryLimit.
func (s *Stats) Record(now time.Time) {
	s.TotalLaunches++
	s.LastLaunch = now
	s.History = append(s.History, now)
	if over := len(s.History) - HistoryLimit; over > 0 {
		s.History = slices.Delete(s.History, 0, over)
	}
}

// RecentLaunches returns the number of launches kept in History.
func (s *Stats) RecentLaunches() int {
	return len(s.History)
}

// Clone returns a deep copy. History is never nil in the copy.
func (s *Stats) Clone() *Stats {
	c := *s
	c.History = make([]time.Time, len(s.History))
	copy(c.History, s.History)
	return &c
}
