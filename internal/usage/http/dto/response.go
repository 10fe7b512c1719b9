// Package dto provides data transfer objects for the usage HTTP API.
package dto

import (
	"time"

	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

// StatsResponse reports launch statistics. last_launch is null until the first launch.
type StatsResponse struct {
	TotalLaunches  int        `json:"total_launches"`
	FirstLaunch    time.Time  `json:"first_launch"`
	LastLaunch     *time.Time `json:"last_launch"`
	RecentLaunches int        `json:"recent_launches"`
}

// MapStatsToResponse converts statistics to their API response.
func MapStatsToResponse(stats *usageDomain.Stats) StatsResponse {
	resp := StatsResponse{
		TotalLaunches:  stats.TotalLaunches,
		FirstLaunch:    stats.FirstLaunch,
		RecentLaunches: stats.RecentLaunches(),
	}
	if !stats.LastLaunch.IsZero() {
		last := stats.LastLaunch
		resp.LastLaunch = &last
	}
	return resp
}
