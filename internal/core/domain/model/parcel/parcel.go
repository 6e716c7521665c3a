package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
// through the NewParcel or RestoreParcel factory methods.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

// Parcel is the aggregate root of the delivery lifecycle. It owns the current
// status, the blocked flag, and the append-only status history, and it is the
// single place where transitions are authorized and applied.
//
// Parcel maintains these invariants:
//   - Every status change goes through ApplyTransition and follows the
//     canonical transition table.
//   - Each successful transition appends exactly one history entry; a failed
//     call leaves the parcel untouched.
//   - The history is append-only: entries are never reordered, truncated, or
//     mutated after insertion.
//   - A blocked parcel only accepts the admin hold event until unblocked.
//   - Receiver info and parcel details are fixed at creation.
type Parcel struct {
	id         kernel.UUID
	trackingID kernel.TrackingID

	senderID kernel.UUID

	// receiverID is nil until a registered receiver approves or declines;
	// that first acted-on-by receiver becomes bound permanently.
	receiverID *kernel.UUID

	receiverInfo ReceiverInfo
	details      Details
	fee          float64

	currentStatus Status
	isBlocked     bool

	// heldFromStatus remembers where to resume to while the parcel is
	// ON_HOLD. StatusUnknown whenever the parcel is not held.
	heldFromStatus Status

	history []HistoryEntry

	createdAt time.Time
	updatedAt time.Time

	// version backs optimistic concurrency control in the repository.
	version int

	guard guard.ConstructorGuard
}

// NewParcel creates a new Parcel in the REQUESTED status with its first
// history entry recorded against the creating sender.
//
// Parameters:
//   - id: unique parcel identifier
//   - trackingID: the public tracking identifier
//   - sender: the creating actor, must have the SENDER role
//   - receiverInfo: contact snapshot supplied by the sender
//   - details: physical parcel details
//   - fee: delivery fee computed upstream, must not be negative
//   - now: creation timestamp
func NewParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	sender actor.Actor,
	receiverInfo ReceiverInfo,
	details Details,
	fee float64,
	now time.Time,
) (*Parcel, error) {
	if err := sender.Validate(); err != nil {
		return nil, err
	}
	if !sender.IsSender() {
		return nil, errs.NewNotAuthorizedError(sender.Role().String(), "create parcel")
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	parcel := &Parcel{
		senderID:       sender.ID(),
		currentStatus:  StatusRequested,
		heldFromStatus: StatusUnknown,
		createdAt:      now,
		updatedAt:      now,
		version:        1,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingID(trackingID),
		parcel.setReceiverInfo(receiverInfo),
		parcel.setDetails(details),
		parcel.setFee(fee),
	); err != nil {
		return nil, err
	}

	creator, err := NewActorRef(sender)
	if err != nil {
		return nil, err
	}
	entry, err := NewHistoryEntry(StatusRequested, now, creator, "")
	if err != nil {
		return nil, err
	}
	parcel.history = []HistoryEntry{entry}

	return parcel, nil
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage,
// including its full status history and the version used for optimistic
// concurrency control. The restored parcel behaves identically to one built
// through normal domain operations.
func RestoreParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	senderID kernel.UUID,
	receiverID *kernel.UUID,
	receiverInfo ReceiverInfo,
	details Details,
	fee float64,
	status Status,
	isBlocked bool,
	heldFromStatus Status,
	history []HistoryEntry,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Parcel, error) {
	if err := senderID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if receiverID != nil {
		if err := receiverID.Validate(); err != nil {
			return nil, err
		}
	}
	if status == StatusOnHold {
		if err := heldFromStatus.Validate(); err != nil {
			return nil, err
		}
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("updatedAt")
	}
	if version <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version is invalid",
			fmt.Errorf("%d is not greater than 0", version))
	}

	parcel := &Parcel{
		senderID:       senderID,
		receiverID:     receiverID,
		currentStatus:  status,
		isBlocked:      isBlocked,
		heldFromStatus: heldFromStatus,
		history:        history,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingID(trackingID),
		parcel.setReceiverInfo(receiverInfo),
		parcel.setDetails(details),
		parcel.setFee(fee),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// Validate ensures the Parcel was created through one of its constructors.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingID returns the public tracking identifier.
func (p *Parcel) TrackingID() kernel.TrackingID {
	return p.trackingID
}

// SenderID returns the owning sender's identifier.
func (p *Parcel) SenderID() kernel.UUID {
	return p.senderID
}

// ReceiverID returns the bound receiver's identifier.
// Returns nil until a registered receiver has approved or declined.
func (p *Parcel) ReceiverID() *kernel.UUID {
	return p.receiverID
}

// ReceiverInfo returns the receiver contact snapshot.
func (p *Parcel) ReceiverInfo() ReceiverInfo {
	return p.receiverInfo
}

// Details returns the physical parcel details.
func (p *Parcel) Details() Details {
	return p.details
}

// Fee returns the delivery fee attached at creation.
func (p *Parcel) Fee() float64 {
	return p.fee
}

// Status returns the parcel's current lifecycle status.
func (p *Parcel) Status() Status {
	return p.currentStatus
}

// IsBlocked reports whether an admin has blocked the parcel.
func (p *Parcel) IsBlocked() bool {
	return p.isBlocked
}

// HeldFromStatus returns the status the parcel will resume to.
// Returns StatusUnknown when the parcel is not ON_HOLD.
func (p *Parcel) HeldFromStatus() Status {
	return p.heldFromStatus
}

// History returns a copy of the status history in chronological order.
func (p *Parcel) History() []HistoryEntry {
	history := make([]HistoryEntry, len(p.history))
	copy(history, p.history)
	return history
}

// CreatedAt returns the creation timestamp.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version returns the optimistic concurrency version.
func (p *Parcel) Version() int {
	return p.version
}

// ApplyTransition applies one lifecycle event to the parcel on behalf of the
// given actor.
//
// Checks run in this order, and the first failure wins:
//  1. A blocked parcel rejects everything but the admin hold event
//     (ParcelBlockedError).
//  2. The (current status, event) pair must be legal per the transition
//     table (InvalidTransitionError).
//  3. The actor's role must match the rule, and for sender/receiver rules
//     the actor must be the bound sender/receiver (NotAuthorizedError).
//     An unbound receiver rule binds the acting receiver on success.
//  4. Cancel and decline require a non-empty note (ValueIsRequiredError);
//     other events default the note to the empty string. Notes are stored
//     verbatim, including surrounding whitespace.
//
// On success exactly one history entry is appended and updatedAt advances;
// on failure the parcel is left completely untouched.
func (p *Parcel) ApplyTransition(by actor.Actor, event Event, note string, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		return err
	}
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}

	if p.isBlocked && event != EventHold {
		return errs.NewParcelBlockedError(p.id)
	}

	rule, err := p.resolveRule(event)
	if err != nil {
		return err
	}

	if by.Role() != rule.role {
		return errs.NewNotAuthorizedError(by.Role().String(), event.String())
	}
	if rule.mustBeSender && !by.ID().IsEqual(p.senderID) {
		return errs.NewNotAuthorizedError(by.Role().String(), event.String())
	}

	bindReceiver := false
	if rule.mustBeReceiver {
		if p.receiverID == nil {
			bindReceiver = true
		} else if !by.ID().IsEqual(*p.receiverID) {
			return errs.NewNotAuthorizedError(by.Role().String(), event.String())
		}
	}

	if event.RequiresNote() && strings.TrimSpace(note) == "" {
		return errs.NewValueIsRequiredError("note")
	}

	performer, err := NewActorRef(by)
	if err != nil {
		return err
	}
	entry, err := NewHistoryEntry(rule.to, now, performer, note)
	if err != nil {
		return err
	}

	if bindReceiver {
		receiverID := by.ID()
		p.receiverID = &receiverID
	}
	switch event {
	case EventHold:
		p.heldFromStatus = p.currentStatus
	case EventResume:
		p.heldFromStatus = StatusUnknown
	}
	p.currentStatus = rule.to
	p.history = append(p.history, entry)
	p.updatedAt = now

	return nil
}

// SetBlocked sets or clears the admin block flag. Blocking is orthogonal to
// the lifecycle: it does not change the current status and appends no history
// entry, but it does advance updatedAt.
func (p *Parcel) SetBlocked(by actor.Actor, blocked bool, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}

	if !by.IsAdmin() {
		action := "block parcel"
		if !blocked {
			action = "unblock parcel"
		}
		return errs.NewNotAuthorizedError(by.Role().String(), action)
	}

	p.isBlocked = blocked
	p.updatedAt = now
	return nil
}

// BumpVersion advances the optimistic concurrency version. Called by the
// repository after a successful conditional update.
func (p *Parcel) BumpVersion() {
	p.version++
}

// resolveRule finds the transition rule for the given event from the current
// status. Hold and resume are resolved here rather than in the static table:
// hold is legal from any non-terminal, not-yet-held status, and resume
// returns from ON_HOLD to the status captured when the hold was entered.
func (p *Parcel) resolveRule(event Event) (transitionRule, error) {
	switch event {
	case EventHold:
		if p.currentStatus.IsTerminal() || p.currentStatus == StatusOnHold {
			return transitionRule{}, errs.NewInvalidTransitionError(p.currentStatus.String(), event.String())
		}
		return transitionRule{to: StatusOnHold, role: actor.RoleAdmin}, nil

	case EventResume:
		if p.currentStatus != StatusOnHold {
			return transitionRule{}, errs.NewInvalidTransitionError(p.currentStatus.String(), event.String())
		}
		return transitionRule{to: p.heldFromStatus, role: actor.RoleAdmin}, nil
	}

	rule, ok := getTransitionRules()[p.currentStatus][event]
	if !ok {
		return transitionRule{}, errs.NewInvalidTransitionError(p.currentStatus.String(), event.String())
	}
	return rule, nil
}

// setID validates and sets the parcel's unique identifier.
func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setTrackingID validates and sets the public tracking identifier.
func (p *Parcel) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	p.trackingID = trackingID
	return nil
}

// setReceiverInfo validates and sets the receiver contact snapshot.
func (p *Parcel) setReceiverInfo(receiverInfo ReceiverInfo) error {
	if err := receiverInfo.Validate(); err != nil {
		return err
	}
	p.receiverInfo = receiverInfo
	return nil
}

// setDetails validates and sets the physical parcel details.
func (p *Parcel) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.details = details
	return nil
}

// setFee validates and sets the delivery fee.
// The fee is computed upstream and must not be negative.
func (p *Parcel) setFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fee is invalid",
			fmt.Errorf("%v is negative", fee))
	}
	p.fee = fee
	return nil
}
