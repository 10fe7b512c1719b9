// Package dto provides data transfer objects for the resource HTTP API.
package dto

import (
	"time"

	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// LockedResourceResponse represents a locked resource in API responses.
type LockedResourceResponse struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	LockedAt *time.Time `json:"locked_at"`
}

// ListLockedResponse represents the locked set.
type ListLockedResponse struct {
	Data []LockedResourceResponse `json:"data"`
}

// LockStatusResponse reports whether one name is locked.
type LockStatusResponse struct {
	Name   string `json:"name"`
	Locked bool   `json:"locked"`
}

// MapLockedToListResponse converts the locked set to an API response.
func MapLockedToListResponse(locked []*resourceDomain.LockedResource) ListLockedResponse {
	data := make([]LockedResourceResponse, 0, len(locked))
	for _, l := range locked {
		item := LockedResourceResponse{Name: l.Name, Path: l.Path}
		if !l.LockedAt.IsZero() {
			lockedAt := l.LockedAt
			item.LockedAt = &lockedAt
		}
		data = append(data, item)
	}
	return ListLockedResponse{Data: data}
}
