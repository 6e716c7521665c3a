package kernel

import (
	"fmt"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
)

// ErrTrackingIDIsNotConstructed indicates that a TrackingID was not properly initialized
// through one of the constructor functions.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingID must be created via NewTrackingID or TrackingIDFromString")

// trackingIDPattern matches the public tracking identifier format:
// TRK-<creation date as YYYYMMDD>-<six digit suffix>.
var trackingIDPattern = regexp.MustCompile(`^TRK-(\d{8})-(\d{6})$`)

const (
	trackingIDDateLayout = "20060102"
	maxTrackingSequence  = 999999
)

// TrackingID is a value object holding the human-readable unique identifier a
// parcel is tracked by. It is assigned once at parcel creation and never
// changes for the lifetime of the parcel.
//
// The format is TRK-YYYYMMDD-NNNNNN, where the date is the parcel creation
// date and the numeric suffix makes the identifier globally unique (the
// repository enforces uniqueness as a backstop).
type TrackingID struct {
	value string
}

// NewTrackingID builds a TrackingID from a creation date and a numeric suffix.
// The suffix must fit in six digits.
func NewTrackingID(creationDate time.Time, sequence int) (TrackingID, error) {
	if creationDate.IsZero() {
		return TrackingID{}, errs.NewValueIsRequiredError("creationDate")
	}
	if sequence < 0 || sequence > maxTrackingSequence {
		return TrackingID{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 0, maxTrackingSequence)
	}

	return TrackingID{
		value: fmt.Sprintf("TRK-%s-%06d", creationDate.Format(trackingIDDateLayout), sequence),
	}, nil
}

// TrackingIDFromString parses and validates a tracking identifier, typically
// received from a public tracking request or read back from persistence.
func TrackingIDFromString(s string) (TrackingID, error) {
	matches := trackingIDPattern.FindStringSubmatch(s)
	if matches == nil {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("%q does not match TRK-YYYYMMDD-NNNNNN", s))
	}

	if _, err := time.Parse(trackingIDDateLayout, matches[1]); err != nil {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId", err)
	}

	return TrackingID{value: s}, nil
}

// String returns the tracking identifier in its canonical text form.
func (t TrackingID) String() string {
	return t.value
}

// CreationDate returns the date component encoded in the identifier.
func (t TrackingID) CreationDate() (time.Time, error) {
	if err := t.Validate(); err != nil {
		return time.Time{}, err
	}
	return time.Parse(trackingIDDateLayout, trackingIDPattern.FindStringSubmatch(t.value)[1])
}

// IsEqual compares two tracking identifiers for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate checks if the TrackingID is properly constructed.
// Returns ErrTrackingIDIsNotConstructed for a zero value.
func (t TrackingID) Validate() error {
	if t.value == "" {
		return ErrTrackingIDIsNotConstructed
	}
	return nil
}
