// Package depot holds the immutable pool of vehicles trains are composed from.
package depot

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/kilianp07/traindepot/core/model"
)

// Depot is a read-only set of engines and waggons with unique serial numbers.
// The vehicles themselves are shared with the trains built from them, so a
// Depot used from several goroutines needs the same guard as those trains.
type Depot struct {
	engines []*model.Engine
	waggons []*model.Waggon
	index   map[uuid.UUID]model.Vehicle
}

// New re-validates every vehicle and rejects duplicate serial numbers across
// engines and waggons. Both validation and the duplicate scan walk the
// engines before the waggons, each in input order, so with several
// duplicates the first one met on that walk is reported as a
// *model.DuplicateSerialError. Loaders that read waggons first still get
// a rejection, only the reported serial may differ.
func New(val *model.Validator, engines []*model.Engine, waggons []*model.Waggon) (*Depot, error) {
	if val == nil {
		val = model.NewValidator()
	}
	for i, e := range engines {
		if e == nil {
			return nil, fmt.Errorf("%w: engine %d is nil", model.ErrInvalidArgument, i)
		}
		if err := e.Validate(val); err != nil {
			return nil, fmt.Errorf("engine %d: %w", i, err)
		}
	}
	for i, w := range waggons {
		if w == nil {
			return nil, fmt.Errorf("%w: waggon %d is nil", model.ErrInvalidArgument, i)
		}
		if err := w.Validate(val); err != nil {
			return nil, fmt.Errorf("waggon %d: %w", i, err)
		}
	}

	index := make(map[uuid.UUID]model.Vehicle, len(engines)+len(waggons))
	add := func(v model.Vehicle) error {
		if _, ok := index[v.SerialNumber()]; ok {
			return &model.DuplicateSerialError{Serial: v.SerialNumber()}
		}
		index[v.SerialNumber()] = v
		return nil
	}
	for _, e := range engines {
		if err := add(e); err != nil {
			return nil, err
		}
	}
	for _, w := range waggons {
		if err := add(w); err != nil {
			return nil, err
		}
	}
	return &Depot{
		engines: slices.Clone(engines),
		waggons: slices.Clone(waggons),
		index:   index,
	}, nil
}

// Engines returns the engines in load order.
func (d *Depot) Engines() []*model.Engine { return slices.Clone(d.engines) }

// Waggons returns the waggons in load order.
func (d *Depot) Waggons() []*model.Waggon { return slices.Clone(d.waggons) }

// Vehicles returns all engines followed by all waggons.
func (d *Depot) Vehicles() []model.Vehicle {
	out := make([]model.Vehicle, 0, len(d.engines)+len(d.waggons))
	for _, e := range d.engines {
		out = append(out, e)
	}
	for _, w := range d.waggons {
		out = append(out, w)
	}
	return out
}

// Len returns the number of vehicles in the depot.
func (d *Depot) Len() int { return len(d.index) }

// Lookup finds a vehicle by serial number.
func (d *Depot) Lookup(serial uuid.UUID) (model.Vehicle, bool) {
	v, ok := d.index[serial]
	return v, ok
}

// Engine finds an engine by serial number.
func (d *Depot) Engine(serial uuid.UUID) (*model.Engine, bool) {
	e, ok := d.index[serial].(*model.Engine)
	return e, ok
}

// Idle returns the vehicles not assigned to any train, engines first.
func (d *Depot) Idle() []model.Vehicle {
	var out []model.Vehicle
	for _, v := range d.Vehicles() {
		if v.Train() == nil {
			out = append(out, v)
		}
	}
	return out
}
