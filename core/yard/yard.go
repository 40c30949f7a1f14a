// Package yard hosts a depot and the trains composed from it behind a single
// lock, so the composition rules can be used from concurrent callers.
package yard

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/traindepot/core/depot"
	"github.com/kilianp07/traindepot/core/events"
	"github.com/kilianp07/traindepot/core/logger"
	"github.com/kilianp07/traindepot/core/metrics"
	"github.com/kilianp07/traindepot/core/model"
)

var (
	// ErrUnknownTrain is returned when no train with the given name exists in the yard.
	ErrUnknownTrain = errors.New("unknown train")
	// ErrTrainExists is returned when a train name is already used in the yard.
	ErrTrainExists = errors.New("train already exists")
	// ErrUnknownVehicle is returned when a serial number is not part of the depot.
	ErrUnknownVehicle = errors.New("unknown vehicle")
)

// Bus is the subset of the event bus the yard publishes on.
type Bus interface {
	Publish(events.Event)
}

// Yard owns the trains built from one depot. Every operation holds the yard
// lock for its whole duration, which covers the depot vehicles and all train
// aggregates at once.
type Yard struct {
	mu     sync.Mutex
	depot  *depot.Depot
	trains map[string]*model.Train

	sink metrics.MetricsSink
	bus  Bus
	log  logger.Logger
	now  func() time.Time
}

// New creates a yard for d. sink, bus and log may be nil.
func New(d *depot.Depot, sink metrics.MetricsSink, bus Bus, log logger.Logger) *Yard {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Yard{
		depot:  d,
		trains: make(map[string]*model.Train),
		sink:   sink,
		bus:    bus,
		log:    logger.OrNop(log),
		now:    time.Now,
	}
}

// Depot returns the depot the yard draws its vehicles from.
func (y *Yard) Depot() *depot.Depot { return y.depot }

// Compose creates a train founded by the engine with the given serial number.
func (y *Yard) Compose(name string, engine uuid.UUID) (model.Snapshot, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	if _, ok := y.trains[name]; ok {
		return model.Snapshot{}, fmt.Errorf("%w: %q", ErrTrainExists, name)
	}
	e, err := y.engine(engine)
	if err != nil {
		return model.Snapshot{}, err
	}
	t, err := model.NewTrain(name, e)
	if err != nil {
		return model.Snapshot{}, err
	}
	y.trains[name] = t
	y.log.Infof("composed train %q with engine %s", name, engine)
	return y.commit(t, events.Event{Kind: events.KindComposed, Serial: &engine}), nil
}

// Attach adds the depot vehicle with the given serial number to a train.
func (y *Yard) Attach(name string, serial uuid.UUID) (model.Snapshot, error) {
	return y.mutate(name, events.KindAttached, &serial, 0, func(t *model.Train) error {
		v, err := y.vehicle(serial)
		if err != nil {
			return err
		}
		return t.Add(v)
	})
}

// Detach removes the vehicle with the given serial number from a train.
func (y *Yard) Detach(name string, serial uuid.UUID) (model.Snapshot, error) {
	return y.mutate(name, events.KindDetached, &serial, 0, func(t *model.Train) error {
		v, err := y.vehicle(serial)
		if err != nil {
			return err
		}
		return t.Remove(v)
	})
}

// Board adds n passengers to a train.
func (y *Yard) Board(name string, n int) (model.Snapshot, error) {
	return y.mutate(name, events.KindBoarded, nil, n, func(t *model.Train) error {
		return t.AddPassengers(n)
	})
}

// Alight removes n passengers from a train.
func (y *Yard) Alight(name string, n int) (model.Snapshot, error) {
	return y.mutate(name, events.KindAlighted, nil, n, func(t *model.Train) error {
		return t.RemovePassengers(n)
	})
}

// Load adds w kg of freight to a train.
func (y *Yard) Load(name string, w int) (model.Snapshot, error) {
	return y.mutate(name, events.KindLoaded, nil, w, func(t *model.Train) error {
		return t.AddFreight(w)
	})
}

// Unload removes w kg of freight from a train.
func (y *Yard) Unload(name string, w int) (model.Snapshot, error) {
	return y.mutate(name, events.KindUnloaded, nil, w, func(t *model.Train) error {
		return t.RemoveFreight(w)
	})
}

// Snapshot reports the current state of a train.
func (y *Yard) Snapshot(name string) (model.Snapshot, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	t, ok := y.trains[name]
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownTrain, name)
	}
	return t.Snapshot(), nil
}

// List reports all trains sorted by name.
func (y *Yard) List() []model.Snapshot {
	y.mu.Lock()
	defer y.mu.Unlock()
	res := make([]model.Snapshot, 0, len(y.trains))
	for _, t := range y.trains {
		res = append(res, t.Snapshot())
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Idle returns the serial numbers of the depot vehicles not assigned to a train.
func (y *Yard) Idle() []uuid.UUID {
	y.mu.Lock()
	defer y.mu.Unlock()
	idle := y.depot.Idle()
	out := make([]uuid.UUID, len(idle))
	for i, v := range idle {
		out[i] = v.SerialNumber()
	}
	return out
}

// Inventory counts the depot vehicles by kind and assignment.
func (y *Yard) Inventory() metrics.DepotInventory {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.inventory()
}

func (y *Yard) inventory() metrics.DepotInventory {
	inv := metrics.DepotInventory{
		Engines: len(y.depot.Engines()),
		Waggons: len(y.depot.Waggons()),
		Time:    y.now(),
	}
	for _, v := range y.depot.Idle() {
		if v.Kind() == model.KindEngine {
			inv.IdleEngines++
		} else {
			inv.IdleWaggons++
		}
	}
	return inv
}

func (y *Yard) mutate(name string, kind events.Kind, serial *uuid.UUID, amount int, op func(*model.Train) error) (model.Snapshot, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	t, ok := y.trains[name]
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownTrain, name)
	}
	if err := op(t); err != nil {
		y.log.Debugw("train operation rejected", map[string]any{
			"train": name, "kind": string(kind), "error": err.Error(),
		})
		return model.Snapshot{}, err
	}
	return y.commit(t, events.Event{Kind: kind, Serial: serial, Amount: amount}), nil
}

// commit publishes ev for t and records the resulting state. It must be
// called with the lock held and only after the mutation succeeded.
func (y *Yard) commit(t *model.Train, ev events.Event) model.Snapshot {
	y.publish(t, ev)
	return y.record(t, ev.Kind.Composition())
}

func (y *Yard) publish(t *model.Train, ev events.Event) {
	ev.Train = t.Name()
	ev.Time = y.now()
	if y.bus != nil {
		y.bus.Publish(ev)
	}
}

// record hands the snapshot of t to the sink, plus the depot inventory when
// the composition changed.
func (y *Yard) record(t *model.Train, composition bool) model.Snapshot {
	snap := t.Snapshot()
	if err := y.sink.RecordTrainSnapshot(metrics.TrainSnapshotEvent{Snapshot: snap, Time: y.now()}); err != nil {
		y.log.Errorf("record snapshot of %q: %v", t.Name(), err)
	}
	if !composition {
		return snap
	}
	if rec, ok := y.sink.(metrics.DepotRecorder); ok {
		if err := rec.RecordDepotInventory(y.inventory()); err != nil {
			y.log.Errorf("record depot inventory: %v", err)
		}
	}
	return snap
}

func (y *Yard) vehicle(serial uuid.UUID) (model.Vehicle, error) {
	v, ok := y.depot.Lookup(serial)
	if !ok {
		return nil, fmt.Errorf("%w: serial number %s", ErrUnknownVehicle, serial)
	}
	return v, nil
}

func (y *Yard) engine(serial uuid.UUID) (*model.Engine, error) {
	v, err := y.vehicle(serial)
	if err != nil {
		return nil, err
	}
	e, ok := v.(*model.Engine)
	if !ok {
		return nil, fmt.Errorf("%w: the %s with serial number %s is not an engine",
			model.ErrInvalidArgument, v.Kind(), serial)
	}
	return e, nil
}
