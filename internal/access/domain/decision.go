// Package domain defines access decisions and the lock state.
package domain

import "fmt"

// Decision is the outcome of an authorization attempt. Denials are values, not errors.
type Decision int

const (
	Granted Decision = iota
	DeniedUnregisteredCard
	DeniedSuspicious
	DeniedWrongPin
	DeniedPinRequired
)

var decisionNames = map[Decision]string{
	Granted:                "granted",
	DeniedUnregisteredCard: "denied_unregistered_card",
	DeniedSuspicious:       "denied_suspicious",
	DeniedWrongPin:         "denied_wrong_pin",
	DeniedPinRequired:      "denied_pin_required",
}

// String returns the snake_case name used in logs, metrics and JSON.
func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// IsGranted reports whether access was granted.
func (d Decision) IsGranted() bool {
	return d == Granted
}

// MarshalText encodes the decision by name.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// State is the lock state derived from the locked set: Locked iff it is non-empty.
type State int

const (
	Unlocked State = iota
	Locked
)

// String returns "unlocked" or "locked".
func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "unlocked"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
