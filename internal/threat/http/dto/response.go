package dto

import (
	"time"

	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

// VerdictResponse represents a classification result.
type VerdictResponse struct {
	Suspicious bool   `json:"suspicious"`
	Rule       string `json:"rule,omitempty"`
	Match      string `json:"match,omitempty"`
}

// BlacklistCardResponse reports whether the card was newly blocked.
type BlacklistCardResponse struct {
	Added bool `json:"added"`
}

// BlacklistEntryResponse represents a blocked fingerprint.
type BlacklistEntryResponse struct {
	Hash      string     `json:"hash"`
	Reason    string     `json:"reason"`
	CreatedAt *time.Time `json:"created_at"`
}

// BlacklistResponse represents the whole blacklist.
type BlacklistResponse struct {
	Entries  []BlacklistEntryResponse `json:"entries"`
	Patterns []string                 `json:"patterns"`
}

// MapVerdictToResponse converts a domain verdict to an API response.
func MapVerdictToResponse(verdict *threatDomain.Verdict) VerdictResponse {
	return VerdictResponse{
		Suspicious: verdict.Suspicious,
		Rule:       string(verdict.Rule),
		Match:      verdict.Match,
	}
}

// MapBlacklistToResponse converts a domain blacklist to an API response.
func MapBlacklistToResponse(blacklist *threatDomain.Blacklist) BlacklistResponse {
	response := BlacklistResponse{
		Entries:  make([]BlacklistEntryResponse, 0, len(blacklist.Entries)),
		Patterns: make([]string, 0, len(blacklist.Patterns)),
	}
	for _, entry := range blacklist.Entries {
		item := BlacklistEntryResponse{Hash: entry.Hash, Reason: entry.Reason}
		if !entry.CreatedAt.IsZero() {
			createdAt := entry.CreatedAt
			item.CreatedAt = &createdAt
		}
		response.Entries = append(response.Entries, item)
	}
	response.Patterns = append(response.Patterns, blacklist.Patterns...)
	return response
}
