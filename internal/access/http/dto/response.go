package dto

import accessDomain "github.com/allisson/cardguard/internal/access/domain"

// DecisionResponse is returned by unlock and evaluate requests.
type DecisionResponse struct {
	Decision accessDomain.Decision `json:"decision"`
	Granted  bool                  `json:"granted"`
}

// VerifyResponse is returned by verify requests.
type VerifyResponse struct {
	Granted bool `json:"granted"`
}

// StateResponse reports the lock state.
type StateResponse struct {
	State accessDomain.State `json:"state"`
}

// MapDecisionToResponse converts a decision to its API response.
func MapDecisionToResponse(decision accessDomain.Decision) DecisionResponse {
	return DecisionResponse{
		Decision: decision,
		Granted:  decision.IsGranted(),
	}
}
