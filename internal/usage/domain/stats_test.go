package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Record(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := NewStats(start)

	assert.Zero(t, stats.TotalLaunches)
	assert.True(t, stats.LastLaunch.IsZero())
	assert.NotNil(t, stats.History)

	launch := start.Add(time.Minute)
	stats.Record(launch)

	assert.Equal(t, 1, stats.TotalLaunches)
	assert.Equal(t, start, stats.FirstLaunch)
	assert.Equal(t, launch, stats.LastLaunch)
	assert.Equal(t, []time.Time{launch}, stats.History)
}

func TestStats_RecordCapsHistory(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := NewStats(start)

	for i := 1; i <= HistoryLimit+5; i++ {
		stats.Record(start.Add(time.Duration(i) * time.Second))
	}

	assert.Equal(t, HistoryLimit+5, stats.TotalLaunches)
	require.Len(t, stats.History, HistoryLimit)
	assert.Equal(t, HistoryLimit, stats.RecentLaunches())
	assert.Equal(t, start.Add(6*time.Second), stats.History[0])
	assert.Equal(t, stats.LastLaunch, stats.History[HistoryLimit-1])
}

func TestStats_Clone(t *testing.T) {
	stats := NewStats(time.Now())
	stats.Record(time.Now())

	c := stats.Clone()
	c.Record(time.Now())

	assert.Equal(t, 1, stats.TotalLaunches)
	assert.Len(t, stats.History, 1)
	assert.Len(t, c.History, 2)

	empty := (&Stats{}).Clone()
	assert.NotNil(t, empty.History)
}
