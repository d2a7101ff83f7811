package models

import (
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
)

// QuotaLedger holds a user's yearly P1/P2 consumption.
//
// Invariants:
//   - P1Used and P2Used are 0 or 1
//   - P1Used == 1 iff the user holds exactly one active P1 commitment that owns the
//     slot (pending/approved interest, or non-cancelled registration with
//     QuotaReserved); same for P2
//
// The ledger is a value: callers load it, apply Reserve/Release, and write it back
// in the same transaction as the record whose status changed.
type QuotaLedger struct {
	P1Used int `json:"p1_used"`
	P2Used int `json:"p2_used"`
}

// Reserve consumes the slot for a quota-bound priority. P3 is a no-op.
func (l *QuotaLedger) Reserve(p id.Priority) error {
	switch p {
	case id.PriorityP1:
		if l.P1Used != 0 {
			return dErrors.New(dErrors.CodeQuotaExceeded, "P1 quota already used this year")
		}
		l.P1Used = 1
	case id.PriorityP2:
		if l.P2Used != 0 {
			return dErrors.New(dErrors.CodeQuotaExceeded, "P2 quota already used this year")
		}
		l.P2Used = 1
	}
	return nil
}

// Release refunds the slot for a quota-bound priority, saturating at zero.
func (l *QuotaLedger) Release(p id.Priority) {
	switch p {
	case id.PriorityP1:
		if l.P1Used > 0 {
			l.P1Used--
		}
	case id.PriorityP2:
		if l.P2Used > 0 {
			l.P2Used--
		}
	}
}

// Used reports whether the slot for p is taken. P3 is never used.
func (l QuotaLedger) Used(p id.Priority) bool {
	switch p {
	case id.PriorityP1:
		return l.P1Used > 0
	case id.PriorityP2:
		return l.P2Used > 0
	}
	return false
}

// LedgerOp is the kind of change a transition applies to the ledger.
type LedgerOp int

const (
	LedgerNone LedgerOp = iota
	LedgerReserve
	LedgerRelease
)

func (o LedgerOp) String() string {
	switch o {
	case LedgerReserve:
		return "reserve"
	case LedgerRelease:
		return "release"
	default:
		return "none"
	}
}

// LedgerDelta is the ledger side effect computed by a lifecycle transition.
type LedgerDelta struct {
	Op       LedgerOp
	Priority id.Priority
}

// Apply mutates l according to the delta.
func (d LedgerDelta) Apply(l *QuotaLedger) error {
	switch d.Op {
	case LedgerReserve:
		return l.Reserve(d.Priority)
	case LedgerRelease:
		l.Release(d.Priority)
	}
	return nil
}

// IsZero reports whether the delta leaves the ledger untouched.
func (d LedgerDelta) IsZero() bool {
	return d.Op == LedgerNone || !d.Priority.IsQuotaBound()
}

func Reserve(p id.Priority) LedgerDelta { return LedgerDelta{Op: LedgerReserve, Priority: p} }
func Release(p id.Priority) LedgerDelta { return LedgerDelta{Op: LedgerRelease, Priority: p} }
