package model

import "github.com/google/uuid"

// Snapshot is a point-in-time report of a train's composition, load and
// derived metrics.
type Snapshot struct {
	Name                  string      `json:"name"`
	Vehicles              []uuid.UUID `json:"vehicles"`
	Engines               int         `json:"engines"`
	Waggons               int         `json:"waggons"`
	Passengers            int         `json:"passengers"`
	FreightWeight         int         `json:"freight_weight"`
	EmptyWeight           int         `json:"empty_weight"`
	PassengerCapacity     int         `json:"passenger_capacity"`
	FreightCapacity       int         `json:"freight_capacity"`
	OverallWeightCapacity int         `json:"overall_weight_capacity"`
	OverallWeight         int         `json:"overall_weight"`
	Length                int         `json:"length"`
	Conductors            int         `json:"conductors"`
	Traction              int         `json:"traction"`
	WeightToMove          int         `json:"weight_to_move"`
	CanRun                bool        `json:"can_run"`
}

// Snapshot reports the current state of the train.
func (t *Train) Snapshot() Snapshot {
	serials := make([]uuid.UUID, len(t.vehicles))
	for i, v := range t.vehicles {
		serials[i] = v.SerialNumber()
	}
	engines := t.EngineCount()
	return Snapshot{
		Name:                  t.name,
		Vehicles:              serials,
		Engines:               engines,
		Waggons:               len(t.vehicles) - engines,
		Passengers:            t.passengers,
		FreightWeight:         t.freightWeight,
		EmptyWeight:           t.EmptyWeight(),
		PassengerCapacity:     t.PassengerCapacity(),
		FreightCapacity:       t.FreightCapacity(),
		OverallWeightCapacity: t.OverallWeightCapacity(),
		OverallWeight:         t.OverallWeight(),
		Length:                t.Length(),
		Conductors:            t.MinimumConductorsNecessary(),
		Traction:              t.Traction(),
		WeightToMove:          t.TotalWeightToBeMovedByEngines(),
		CanRun:                t.CanRun(),
	}
}
