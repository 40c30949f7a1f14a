package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateSerial matches every *DuplicateSerialError.
	ErrDuplicateSerial = errors.New("duplicate serial number")
	// ErrInvalidArgument is returned for nil vehicles, blank names and negative amounts.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateVehicle is returned when a vehicle is already part of the train.
	ErrDuplicateVehicle = errors.New("vehicle already part of this train")
	// ErrAlreadyOwned is returned when a vehicle belongs to another train.
	ErrAlreadyOwned = errors.New("vehicle already belongs to a train")
	// ErrNotAMember is returned when removing a vehicle the train does not contain.
	ErrNotAMember = errors.New("vehicle is not part of this train")
	// ErrLastEngine is returned when removing the only engine of a train.
	ErrLastEngine = errors.New("every train needs an engine")
	// ErrCapacityExceeded is returned when the load would not fit the train.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrInsufficientLoad is returned when unloading more than the train carries.
	ErrInsufficientLoad = errors.New("insufficient load")
)

// Violation describes a single failed field constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Field + ": " + v.Message }

// ValidationError lists every violated constraint of a vehicle.
type ValidationError struct {
	Subject    string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("the %s is not valid: %s", e.Subject, strings.Join(parts, "; "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Fields returns the paths of all violated fields in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Field
	}
	return out
}

// DuplicateSerialError names the first serial number found twice in a vehicle set.
type DuplicateSerialError struct {
	Serial uuid.UUID
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("more than one vehicle with serial number %s", e.Serial)
}

// Is reports whether target is ErrDuplicateSerial.
func (e *DuplicateSerialError) Is(target error) bool { return target == ErrDuplicateSerial }
