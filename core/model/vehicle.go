// Package model contains the rail vehicles, their validation rules and the
// Train aggregate that composes them.
package model

import (
	"github.com/google/uuid"
)

// Kind tells engines and waggons apart.
type Kind string

const (
	KindEngine Kind = "engine"
	KindWaggon Kind = "waggon"
)

// Attributes holds the fields shared by every vehicle.
type Attributes struct {
	SerialNumber      uuid.UUID `json:"serialNumber" validate:"required"`
	TypeName          string    `json:"typeName" validate:"notblank"`
	Manufacturer      string    `json:"manufacturer" validate:"notblank"`
	ManufactureYear   int       `json:"manufactureYear" validate:"min=1800,max=2023"`
	EmptyWeight       int       `json:"emptyWeight" validate:"min=1000"`      // kg
	Length            int       `json:"length" validate:"min=10"`             // m
	PassengerCapacity int       `json:"passengerCapacity" validate:"min=0"`   // seats
	FreightCapacity   int       `json:"freightCapacity" validate:"min=0"`     // kg
}

// Vehicle is implemented by *Engine and *Waggon only.
type Vehicle interface {
	SerialNumber() uuid.UUID
	Attributes() Attributes
	EmptyWeight() int
	Length() int
	PassengerCapacity() int
	FreightCapacity() int
	Kind() Kind
	// Train returns the train the vehicle currently belongs to, or nil.
	Train() *Train
	// Validate re-checks every field constraint against the current values.
	Validate(*Validator) error

	base() *vehicle
}

// SameVehicle reports whether a and b denote the same entity.
func SameVehicle(a, b Vehicle) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	return a.SerialNumber() == b.SerialNumber()
}

// vehicle is embedded by the concrete variants. train is the back-reference
// maintained by Train.Add and Train.Remove.
type vehicle struct {
	attrs Attributes
	train *Train
}

func (v *vehicle) SerialNumber() uuid.UUID { return v.attrs.SerialNumber }
func (v *vehicle) Attributes() Attributes  { return v.attrs }
func (v *vehicle) TypeName() string        { return v.attrs.TypeName }
func (v *vehicle) Manufacturer() string    { return v.attrs.Manufacturer }
func (v *vehicle) ManufactureYear() int    { return v.attrs.ManufactureYear }
func (v *vehicle) EmptyWeight() int        { return v.attrs.EmptyWeight }
func (v *vehicle) Length() int             { return v.attrs.Length }
func (v *vehicle) PassengerCapacity() int  { return v.attrs.PassengerCapacity }
func (v *vehicle) FreightCapacity() int    { return v.attrs.FreightCapacity }
func (v *vehicle) Train() *Train           { return v.train }

func isNil(v Vehicle) bool {
	return v == nil || v.base() == nil
}
