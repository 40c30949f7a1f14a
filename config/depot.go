package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kilianp07/traindepot/core/depot"
	"github.com/kilianp07/traindepot/core/model"
)

// DepotConfig lists the vehicles a depot is loaded with.
type DepotConfig struct {
	Engines []EngineRecord `json:"engines"`
	Waggons []WaggonRecord `json:"waggons"`
}

// VehicleRecord holds the attributes shared by engines and waggons as they
// appear in the configuration document.
type VehicleRecord struct {
	SerialNumber      string `json:"serial_number"`
	TypeName          string `json:"type_name"`
	Manufacturer      string `json:"manufacturer"`
	ManufactureYear   int    `json:"manufacture_year"`
	EmptyWeight       int    `json:"empty_weight"`
	Length            int    `json:"length"`
	PassengerCapacity int    `json:"passenger_capacity"`
	FreightCapacity   int    `json:"freight_capacity"`
}

type EngineRecord struct {
	VehicleRecord `json:",squash"`
	Traction      int    `json:"traction"`
	Type          string `json:"type"`
}

type WaggonRecord struct {
	VehicleRecord `json:",squash"`
	Type          string `json:"type"`
}

func (r VehicleRecord) attributes() (model.Attributes, error) {
	serial, err := uuid.Parse(r.SerialNumber)
	if err != nil {
		return model.Attributes{}, fmt.Errorf("serial_number %q: %w", r.SerialNumber, err)
	}
	return model.Attributes{
		SerialNumber:      serial,
		TypeName:          r.TypeName,
		Manufacturer:      r.Manufacturer,
		ManufactureYear:   r.ManufactureYear,
		EmptyWeight:       r.EmptyWeight,
		Length:            r.Length,
		PassengerCapacity: r.PassengerCapacity,
		FreightCapacity:   r.FreightCapacity,
	}, nil
}

// ToSpec converts the record into a construction spec for model.NewEngine.
func (r EngineRecord) ToSpec() (model.EngineSpec, error) {
	a, err := r.attributes()
	if err != nil {
		return model.EngineSpec{}, err
	}
	return model.EngineSpec{Attributes: a, Traction: r.Traction, Type: model.EngineType(r.Type)}, nil
}

// ToSpec converts the record into a construction spec for model.NewWaggon.
func (r WaggonRecord) ToSpec() (model.WaggonSpec, error) {
	a, err := r.attributes()
	if err != nil {
		return model.WaggonSpec{}, err
	}
	return model.WaggonSpec{Attributes: a, Type: model.WaggonType(r.Type)}, nil
}

// Validate checks that every serial number parses. Attribute ranges are
// checked when the vehicles are built.
func (c DepotConfig) Validate() error {
	for i, e := range c.Engines {
		if _, err := e.ToSpec(); err != nil {
			return fmt.Errorf("engines[%d]: %w", i, err)
		}
	}
	for i, w := range c.Waggons {
		if _, err := w.ToSpec(); err != nil {
			return fmt.Errorf("waggons[%d]: %w", i, err)
		}
	}
	return nil
}

// Build constructs and validates every vehicle and loads them into a depot.
func (c DepotConfig) Build(val *model.Validator) (*depot.Depot, error) {
	if val == nil {
		val = model.NewValidator()
	}
	engines := make([]*model.Engine, 0, len(c.Engines))
	for i, r := range c.Engines {
		spec, err := r.ToSpec()
		if err != nil {
			return nil, fmt.Errorf("engines[%d]: %w", i, err)
		}
		e, err := model.NewEngine(val, spec)
		if err != nil {
			return nil, fmt.Errorf("engines[%d]: %w", i, err)
		}
		engines = append(engines, e)
	}
	waggons := make([]*model.Waggon, 0, len(c.Waggons))
	for i, r := range c.Waggons {
		spec, err := r.ToSpec()
		if err != nil {
			return nil, fmt.Errorf("waggons[%d]: %w", i, err)
		}
		w, err := model.NewWaggon(val, spec)
		if err != nil {
			return nil, fmt.Errorf("waggons[%d]: %w", i, err)
		}
		waggons = append(waggons, w)
	}
	return depot.New(val, engines, waggons)
}
