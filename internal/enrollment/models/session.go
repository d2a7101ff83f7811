package models

import (
	"time"

	id "trainhub/pkg/domain"
)

// Session is a scheduled occurrence of a formation. Read-only to this module.
type Session struct {
	ID          id.SessionID   `json:"id"`
	FormationID id.FormationID `json:"formation_id"`
	Capacity    int            `json:"capacity"`
	StartDate   time.Time      `json:"start_date"`
}

// HasSeat reports whether one more active registration fits.
func (s *Session) HasSeat(activeCount int) bool {
	return activeCount < s.Capacity
}
