package parcel

import (
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ActorRef is a snapshot of the actor that performed a transition.
// It is captured at transition time and does not change when the actor's
// profile changes later.
type ActorRef struct {
	id          kernel.UUID
	displayName string
	role        actor.Role
}

// NewActorRef captures a snapshot of the given actor.
func NewActorRef(a actor.Actor) (ActorRef, error) {
	if err := a.Validate(); err != nil {
		return ActorRef{}, err
	}
	return ActorRef{
		id:          a.ID(),
		displayName: a.DisplayName(),
		role:        a.Role(),
	}, nil
}

// RestoreActorRef rebuilds an ActorRef from persistence without revalidating
// construction rules beyond field-level checks.
func RestoreActorRef(id kernel.UUID, displayName string, role actor.Role) (ActorRef, error) {
	if err := id.Validate(); err != nil {
		return ActorRef{}, err
	}
	if displayName == "" {
		return ActorRef{}, errs.NewValueIsRequiredError("displayName")
	}
	if err := role.Validate(); err != nil {
		return ActorRef{}, err
	}
	return ActorRef{id: id, displayName: displayName, role: role}, nil
}

// ID returns the snapshotted actor id.
func (r ActorRef) ID() kernel.UUID {
	return r.id
}

// DisplayName returns the snapshotted display name.
func (r ActorRef) DisplayName() string {
	return r.displayName
}

// Role returns the snapshotted role.
func (r ActorRef) Role() actor.Role {
	return r.role
}

// HistoryEntry is one element of the append-only status history.
// Insertion order equals chronological order; entries are never reordered,
// truncated, or mutated after insertion.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	updatedBy ActorRef
	note      string
}

// NewHistoryEntry creates a history entry for a transition into status,
// performed by the given actor at the given time. The note may be empty
// unless the triggering event requires one; that rule is enforced by the
// aggregate before the entry is constructed.
func NewHistoryEntry(status Status, at time.Time, by ActorRef, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	if by == (ActorRef{}) {
		return HistoryEntry{}, errs.NewValueIsRequiredError("updatedBy")
	}

	return HistoryEntry{
		status:    status,
		timestamp: at,
		updatedBy: by,
		note:      note,
	}, nil
}

// Status returns the status this entry recorded.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Timestamp returns when the transition happened.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}

// UpdatedBy returns the snapshot of the actor that performed the transition.
func (h HistoryEntry) UpdatedBy() ActorRef {
	return h.updatedBy
}

// Note returns the free-text note attached to the transition.
// Stored verbatim; empty unless the event required one.
func (h HistoryEntry) Note() string {
	return h.note
}
