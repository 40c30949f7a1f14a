package model

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// PassengerWeight is the assumed weight of one passenger in kg.
	PassengerWeight = 75
	// PassengersPerConductor is the number of passengers one conductor serves
	// on top of the base conductor.
	PassengersPerConductor = 50
)

// Train is a named, ordered composition of vehicles carrying a passenger
// and freight load. It always contains at least one engine.
//
// A Train is not safe for concurrent use; see yard.Yard for a guarded host.
type Train struct {
	name          string
	vehicles      []Vehicle
	passengers    int
	freightWeight int
}

// NewTrain creates a train named name, founded by engine.
func NewTrain(name string, engine *Engine) (*Train, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: train name must not be blank", ErrInvalidArgument)
	}
	t := &Train{name: name}
	if err := t.Add(engine); err != nil {
		return nil, err
	}
	return t, nil
}

// Add appends v to the train and makes the train its owner.
func (t *Train) Add(v Vehicle) error {
	if isNil(v) {
		return fmt.Errorf("%w: vehicle to add must not be nil", ErrInvalidArgument)
	}
	if t.indexOf(v) >= 0 {
		return fmt.Errorf("%w: the %s with serial number %s is already part of train %q",
			ErrDuplicateVehicle, v.Kind(), v.SerialNumber(), t.name)
	}
	if owner := v.Train(); owner != nil {
		return fmt.Errorf("%w: the %s with serial number %s already belongs to train %q",
			ErrAlreadyOwned, v.Kind(), v.SerialNumber(), owner.name)
	}
	v.base().train = t
	t.vehicles = append(t.vehicles, v)
	return nil
}

// Remove detaches v from the train. The last engine can not be removed, nor
// can a vehicle whose capacity is needed for the current load.
func (t *Train) Remove(v Vehicle) error {
	if isNil(v) {
		return fmt.Errorf("%w: vehicle to remove must not be nil", ErrInvalidArgument)
	}
	i := t.indexOf(v)
	if i < 0 {
		return fmt.Errorf("%w: the %s with serial number %s is not part of train %q",
			ErrNotAMember, v.Kind(), v.SerialNumber(), t.name)
	}
	member := t.vehicles[i]
	if member.Kind() == KindEngine && t.EngineCount() < 2 {
		return fmt.Errorf("%w: the engine with serial number %s is the last engine of train %q",
			ErrLastEngine, member.SerialNumber(), t.name)
	}
	if left := t.PassengerCapacity() - member.PassengerCapacity(); t.passengers > left {
		return fmt.Errorf("%w: %d passengers would not fit the remaining capacity of %d",
			ErrCapacityExceeded, t.passengers, left)
	}
	if left := t.FreightCapacity() - member.FreightCapacity(); t.freightWeight > left {
		return fmt.Errorf("%w: %d kg of freight would not fit the remaining capacity of %d kg",
			ErrCapacityExceeded, t.freightWeight, left)
	}
	t.vehicles = slices.Delete(t.vehicles, i, i+1)
	member.base().train = nil
	return nil
}

// AddPassengers boards n passengers.
func (t *Train) AddPassengers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: passengers must not be negative, got %d", ErrInvalidArgument, n)
	}
	// compared against the free seats so a huge n can not wrap around
	if capacity := t.PassengerCapacity(); n > capacity-t.passengers {
		return fmt.Errorf("%w: %d more passengers exceed the %d free of %d seats",
			ErrCapacityExceeded, n, capacity-t.passengers, capacity)
	}
	t.passengers += n
	return nil
}

// RemovePassengers lets n passengers leave the train.
func (t *Train) RemovePassengers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: passengers must not be negative, got %d", ErrInvalidArgument, n)
	}
	if n > t.passengers {
		return fmt.Errorf("%w: train carries %d passengers, can not remove %d",
			ErrInsufficientLoad, t.passengers, n)
	}
	t.passengers -= n
	return nil
}

// AddFreight loads w kg of freight.
func (t *Train) AddFreight(w int) error {
	if w < 0 {
		return fmt.Errorf("%w: freight weight must not be negative, got %d", ErrInvalidArgument, w)
	}
	if capacity := t.FreightCapacity(); w > capacity-t.freightWeight {
		return fmt.Errorf("%w: %d kg more freight exceed the %d kg free of %d kg",
			ErrCapacityExceeded, w, capacity-t.freightWeight, capacity)
	}
	t.freightWeight += w
	return nil
}

// RemoveFreight unloads w kg of freight.
func (t *Train) RemoveFreight(w int) error {
	if w < 0 {
		return fmt.Errorf("%w: freight weight must not be negative, got %d", ErrInvalidArgument, w)
	}
	if w > t.freightWeight {
		return fmt.Errorf("%w: train carries %d kg of freight, can not remove %d kg",
			ErrInsufficientLoad, t.freightWeight, w)
	}
	t.freightWeight -= w
	return nil
}

// EmptyWeight is the summed empty weight of all vehicles in kg.
func (t *Train) EmptyWeight() int { return t.sum(Vehicle.EmptyWeight) }

// PassengerCapacity is the maximum number of passengers the train can carry.
func (t *Train) PassengerCapacity() int { return t.sum(Vehicle.PassengerCapacity) }

// FreightCapacity is the maximum freight load in kg.
func (t *Train) FreightCapacity() int { return t.sum(Vehicle.FreightCapacity) }

// OverallWeightCapacity is the maximum payload in kg, counting PassengerWeight
// per seat.
func (t *Train) OverallWeightCapacity() int {
	return t.PassengerCapacity()*PassengerWeight + t.FreightCapacity()
}

// OverallWeight is the weight of the fully loaded train in kg.
func (t *Train) OverallWeight() int { return t.EmptyWeight() + t.OverallWeightCapacity() }

// Length is the summed length of all vehicles in m.
func (t *Train) Length() int { return t.sum(Vehicle.Length) }

// MinimumConductorsNecessary returns the staff needed for the current passengers.
func (t *Train) MinimumConductorsNecessary() int {
	if t.passengers == 0 {
		return 0
	}
	return 1 + t.passengers/PassengersPerConductor
}

// TotalWeightToBeMovedByEngines is the fully loaded weight without the empty
// weight of the engines themselves.
func (t *Train) TotalWeightToBeMovedByEngines() int {
	own := 0
	for _, e := range t.engines() {
		own += e.EmptyWeight()
	}
	return t.OverallWeight() - own
}

// Traction is the combined traction of all engines.
func (t *Train) Traction() int {
	total := 0
	for _, e := range t.engines() {
		total += e.Traction()
	}
	return total
}

// CanRun reports whether the engines can pull the train at maximum load.
func (t *Train) CanRun() bool {
	return t.Traction() >= t.TotalWeightToBeMovedByEngines()
}

func (t *Train) Name() string       { return t.name }
func (t *Train) Passengers() int    { return t.passengers }
func (t *Train) FreightWeight() int { return t.freightWeight }
func (t *Train) VehicleCount() int  { return len(t.vehicles) }
func (t *Train) EngineCount() int   { return len(t.engines()) }

// Vehicles returns the vehicles in insertion order. The slice is a copy.
func (t *Train) Vehicles() []Vehicle { return slices.Clone(t.vehicles) }

// Engines returns the engines in insertion order.
func (t *Train) Engines() []*Engine { return t.engines() }

// Contains reports whether a vehicle with the serial number of v is part of the train.
func (t *Train) Contains(v Vehicle) bool { return !isNil(v) && t.indexOf(v) >= 0 }

// Equal reports whether both trains carry the same name.
func (t *Train) Equal(other *Train) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name
}

func (t *Train) String() string {
	return fmt.Sprintf("train %q (%d vehicles)", t.name, len(t.vehicles))
}

func (t *Train) indexOf(v Vehicle) int {
	serial := v.SerialNumber()
	return slices.IndexFunc(t.vehicles, func(m Vehicle) bool { return m.SerialNumber() == serial })
}

func (t *Train) engines() []*Engine {
	var out []*Engine
	for _, v := range t.vehicles {
		if e, ok := v.(*Engine); ok {
			out = append(out, e)
		}
	}
	return out
}

func (t *Train) sum(f func(Vehicle) int) int {
	total := 0
	for _, v := range t.vehicles {
		total += f(v)
	}
	return total
}
