package yard

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kilianp07/traindepot/core/events"
	"github.com/kilianp07/traindepot/core/model"
)

// Plan describes a complete train: its vehicles in order, founding engine
// first, and the load to put on it.
type Plan struct {
	Name       string
	Vehicles   []uuid.UUID
	Passengers int
	Freight    int
}

// Build composes the train described by p. The whole plan is checked before
// anything is changed, so a rejected plan leaves the yard untouched.
func (y *Yard) Build(p Plan) (model.Snapshot, error) {
	y.mu.Lock()
	defer y.mu.Unlock()

	vehicles, err := y.check(p)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("plan %q: %w", p.Name, err)
	}
	t, err := model.NewTrain(p.Name, vehicles[0].(*model.Engine))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("plan %q: %w", p.Name, err)
	}
	for _, v := range vehicles[1:] {
		if err := t.Add(v); err != nil {
			return model.Snapshot{}, y.broken(t, p, err)
		}
	}
	if err := t.AddPassengers(p.Passengers); err != nil {
		return model.Snapshot{}, y.broken(t, p, err)
	}
	if err := t.AddFreight(p.Freight); err != nil {
		return model.Snapshot{}, y.broken(t, p, err)
	}
	y.trains[p.Name] = t
	y.log.Infof("built train %q from %d vehicles", p.Name, len(vehicles))

	for i, v := range vehicles {
		serial := v.SerialNumber()
		kind := events.KindAttached
		if i == 0 {
			kind = events.KindComposed
		}
		y.publish(t, events.Event{Kind: kind, Serial: &serial})
	}
	if p.Passengers > 0 {
		y.publish(t, events.Event{Kind: events.KindBoarded, Amount: p.Passengers})
	}
	if p.Freight > 0 {
		y.publish(t, events.Event{Kind: events.KindLoaded, Amount: p.Freight})
	}
	return y.record(t, true), nil
}

func (y *Yard) check(p Plan) ([]model.Vehicle, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: train name must not be blank", model.ErrInvalidArgument)
	}
	if _, ok := y.trains[p.Name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrTrainExists, p.Name)
	}
	if len(p.Vehicles) == 0 {
		return nil, fmt.Errorf("%w: a train needs at least one engine", model.ErrInvalidArgument)
	}
	if p.Passengers < 0 || p.Freight < 0 {
		return nil, fmt.Errorf("%w: load must not be negative", model.ErrInvalidArgument)
	}
	seen := make(map[uuid.UUID]bool, len(p.Vehicles))
	vehicles := make([]model.Vehicle, 0, len(p.Vehicles))
	passengers, freight := 0, 0
	for i, serial := range p.Vehicles {
		v, err := y.vehicle(serial)
		if err != nil {
			return nil, err
		}
		if i == 0 && v.Kind() != model.KindEngine {
			return nil, fmt.Errorf("%w: the first vehicle %s is not an engine", model.ErrInvalidArgument, serial)
		}
		if seen[serial] {
			return nil, fmt.Errorf("%w: serial number %s is listed twice", model.ErrDuplicateVehicle, serial)
		}
		seen[serial] = true
		if owner := v.Train(); owner != nil {
			return nil, fmt.Errorf("%w: the %s with serial number %s already belongs to train %q",
				model.ErrAlreadyOwned, v.Kind(), serial, owner.Name())
		}
		passengers += v.PassengerCapacity()
		freight += v.FreightCapacity()
		vehicles = append(vehicles, v)
	}
	if p.Passengers > passengers {
		return nil, fmt.Errorf("%w: %d passengers exceed the capacity of %d", model.ErrCapacityExceeded, p.Passengers, passengers)
	}
	if p.Freight > freight {
		return nil, fmt.Errorf("%w: %d kg of freight exceed the capacity of %d kg", model.ErrCapacityExceeded, p.Freight, freight)
	}
	return vehicles, nil
}

// broken reports a failure after check passed. That can only happen when the
// train rules and check disagree, which is a programming error; the vehicles
// stay attached to the discarded train so they can not be reused unnoticed.
func (y *Yard) broken(t *model.Train, p Plan, err error) error {
	y.log.Errorf("plan %q passed the checks but failed on %s: %v", p.Name, t, err)
	return fmt.Errorf("plan %q: internal invariant violation: %w", p.Name, err)
}
