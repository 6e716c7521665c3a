package parcel

import (
	"parceltrack/internal/pkg/errs"
)

// ReceiverInfo is the contact snapshot supplied by the sender at creation
// time. It never changes afterwards, even if a registered receiver with a
// different profile later binds to the parcel.
type ReceiverInfo struct {
	name    string
	phone   string
	address string
	city    string

	isConstructed bool
}

// NewReceiverInfo creates a validated ReceiverInfo. All fields are required.
func NewReceiverInfo(name, phone, address, city string) (ReceiverInfo, error) {
	if name == "" {
		return ReceiverInfo{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return ReceiverInfo{}, errs.NewValueIsRequiredError("phone")
	}
	if address == "" {
		return ReceiverInfo{}, errs.NewValueIsRequiredError("address")
	}
	if city == "" {
		return ReceiverInfo{}, errs.NewValueIsRequiredError("city")
	}

	return ReceiverInfo{
		name:          name,
		phone:         phone,
		address:       address,
		city:          city,
		isConstructed: true,
	}, nil
}

// Validate ensures the ReceiverInfo was created through NewReceiverInfo.
func (r ReceiverInfo) Validate() error {
	if !r.isConstructed {
		return errs.NewValueIsRequiredError("receiverInfo")
	}
	return nil
}

// Name returns the receiver's name as supplied by the sender.
func (r ReceiverInfo) Name() string {
	return r.name
}

// Phone returns the receiver's phone number.
func (r ReceiverInfo) Phone() string {
	return r.phone
}

// Address returns the receiver's street address.
func (r ReceiverInfo) Address() string {
	return r.address
}

// City returns the destination city. This is the only receiver field exposed
// through the public tracking view.
func (r ReceiverInfo) City() string {
	return r.city
}
