package models

import (
	id "trainhub/pkg/domain"
)

// ExpectedLedger recomputes the ledger a user should hold from their records.
// Used by consistency checks; the stored ledger is authoritative at runtime.
func ExpectedLedger(interests []*Interest, registrations []*Registration) QuotaLedger {
	var l QuotaLedger
	mark := func(p id.Priority) {
		switch p {
		case id.PriorityP1:
			l.P1Used++
		case id.PriorityP2:
			l.P2Used++
		}
	}
	for _, in := range interests {
		if in.Status.IsActive() {
			mark(in.Priority)
		}
	}
	for _, r := range registrations {
		if r.OwnsSlot() {
			mark(r.Priority)
		}
	}
	return l
}
