// Package parcel provides domain entities and business logic for the parcel
// delivery lifecycle. It implements the Parcel aggregate root together with
// the status state machine that governs every lifecycle change.
//
// The package includes:
//   - Parcel: The aggregate root owning status, blocked flag, and history
//   - Status: The lifecycle states, from REQUESTED through the terminal ones
//   - Event: The transition requests actors may issue
//   - HistoryEntry: One element of the append-only status audit trail
//   - ReceiverInfo, Details: Immutable snapshots captured at creation
//
// Key business rules:
//   - Transitions follow a single canonical table keyed by (status, event),
//     with each row naming the only role allowed to trigger it
//   - Senders act only on their own parcels; the first receiver to approve
//     or decline becomes permanently bound to the parcel
//   - Every successful transition appends exactly one history entry
//   - DELIVERED, CANCELLED, DECLINED and RETURNED are terminal
//   - An admin block suspends all transitions except hold until unblocked
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
