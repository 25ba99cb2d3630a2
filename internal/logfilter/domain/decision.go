package domain

import (
	"fmt"
	"strings"
)

// Decision is the outcome of running a log event through a filter.
//
// Accept - the event passes through to the next stage of the pipeline
// Deny   - the event is suppressed
type Decision uint8

const (
	// Accept lets the event continue down the pipeline.
	Accept Decision = iota
	// Deny suppresses the event.
	Deny
)

// String returns a stable string representation of the decision.
func (d Decision) String() string {
	switch d {
	case Accept:
		return "ACCEPT"
	case Deny:
		return "DENY"
	default:
		return fmt.Sprintf("Decision(%d)", d)
	}
}

// ParseDecision converts a string into a Decision.
// Accepts: "accept", "deny" (case-insensitive).
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept":
		return Accept, nil
	case "deny":
		return Deny, nil
	default:
		return 0, fmt.Errorf("unsupported Decision: %q", s)
	}
}

// IsDeny is a convenience accessor.
func (d Decision) IsDeny() bool { return d == Deny }
