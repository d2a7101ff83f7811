package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "trainhub/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers events with HR/legal significance: account archival
	// and deletion, quota consumption that affects a yearly entitlement.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers configuration changes and denied actions.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine lifecycle activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the lifecycle service for every committed transition.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID // owner of the affected record
	Subject   string    // record id (interest, registration or user)
	Action    string
	Priority  string
	Status    string // status after the transition
	Reason    string
	RequestID string
	// ActorID tracks who performed the action when different from UserID
	// (RH, coach).
	ActorID string
}

// Store persists audit events. The PostgreSQL implementation joins the caller's
// transaction when one is carried in the context.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	EventInterestExpressed     AuditEvent = "interest_expressed"
	EventInterestCoachApproved AuditEvent = "interest_coach_approved"
	EventInterestApproved      AuditEvent = "interest_approved"
	EventInterestRejected      AuditEvent = "interest_rejected"
	EventInterestWithdrawn     AuditEvent = "interest_withdrawn"
	EventInterestConverted     AuditEvent = "interest_converted"
	EventInterestDeleted       AuditEvent = "interest_deleted"

	EventRegistrationCreated   AuditEvent = "registration_created"
	EventRegistrationValidated AuditEvent = "registration_validated"
	EventRegistrationCancelled AuditEvent = "registration_cancelled"
	EventRegistrationCompleted AuditEvent = "registration_completed"

	EventUserArchived AuditEvent = "user_archived"
	EventUserDeleted  AuditEvent = "user_deleted"

	EventSettingChanged AuditEvent = "setting_changed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserArchived:          CategoryCompliance,
	EventUserDeleted:           CategoryCompliance,
	EventInterestDeleted:       CategoryCompliance,
	EventRegistrationValidated: CategoryCompliance,

	EventSettingChanged: CategorySecurity,

	EventInterestExpressed:     CategoryOperations,
	EventInterestCoachApproved: CategoryOperations,
	EventInterestApproved:      CategoryOperations,
	EventInterestRejected:      CategoryOperations,
	EventInterestWithdrawn:     CategoryOperations,
	EventInterestConverted:     CategoryOperations,
	EventRegistrationCreated:   CategoryOperations,
	EventRegistrationCancelled: CategoryOperations,
	EventRegistrationCompleted: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// OutboxEntry is a persisted audit event waiting to be relayed.
type OutboxEntry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}
