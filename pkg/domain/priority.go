package domain

import dErrors "trainhub/pkg/domain-errors"

// Priority is the yearly request tier attached to an interest or registration.
// P1 and P2 are scarce (one active use per user per year); P3 is unlimited.
//
// Usage: construct via ParsePriority at trust boundaries; direct casting bypasses
// validation.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

var validPriorities = map[Priority]bool{
	PriorityP1: true,
	PriorityP2: true,
	PriorityP3: true,
}

// ParsePriority constructs a Priority from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "priority cannot be empty")
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid priority")
	}
	return p, nil
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

// IsQuotaBound reports whether the tier is tracked by the yearly quota ledger.
func (p Priority) IsQuotaBound() bool {
	return p == PriorityP1 || p == PriorityP2
}

func (p Priority) String() string {
	return string(p)
}
