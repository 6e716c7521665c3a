package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Details describes the physical parcel: its type, weight, and an optional
// free-text description. Details are fixed at creation and never mutated.
type Details struct {
	parcelType  string
	weightKg    float64
	description string

	isConstructed bool
}

// NewDetails creates validated parcel Details.
// The type is required and the weight must be positive; the description
// may be empty.
func NewDetails(parcelType string, weightKg float64, description string) (Details, error) {
	if parcelType == "" {
		return Details{}, errs.NewValueIsRequiredError("parcelType")
	}
	if weightKg <= 0 {
		return Details{}, errs.NewValueIsInvalidErrorWithCause("weightKg is invalid",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}

	return Details{
		parcelType:    parcelType,
		weightKg:      weightKg,
		description:   description,
		isConstructed: true,
	}, nil
}

// Validate ensures the Details were created through NewDetails.
func (d Details) Validate() error {
	if !d.isConstructed {
		return errs.NewValueIsRequiredError("parcelDetails")
	}
	return nil
}

// ParcelType returns the declared parcel type.
func (d Details) ParcelType() string {
	return d.parcelType
}

// WeightKg returns the declared weight in kilograms.
func (d Details) WeightKg() float64 {
	return d.weightKg
}

// Description returns the optional free-text description.
func (d Details) Description() string {
	return d.description
}
