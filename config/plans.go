package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kilianp07/traindepot/core/yard"
)

// TrainPlan declares a train to compose at startup. Vehicles lists serial
// numbers, founding engine first.
type TrainPlan struct {
	Name       string   `json:"name"`
	Vehicles   []string `json:"vehicles"`
	Passengers int      `json:"passengers"`
	Freight    int      `json:"freight"`
}

// ToPlan parses the serial numbers into a yard plan.
func (p TrainPlan) ToPlan() (yard.Plan, error) {
	serials := make([]uuid.UUID, 0, len(p.Vehicles))
	for _, s := range p.Vehicles {
		id, err := uuid.Parse(s)
		if err != nil {
			return yard.Plan{}, fmt.Errorf("vehicle %q: %w", s, err)
		}
		serials = append(serials, id)
	}
	return yard.Plan{Name: p.Name, Vehicles: serials, Passengers: p.Passengers, Freight: p.Freight}, nil
}

// Validate checks the plan shape. Membership rules are enforced by the yard.
func (p TrainPlan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Vehicles) == 0 {
		return fmt.Errorf("train %q needs at least one vehicle", p.Name)
	}
	_, err := p.ToPlan()
	return err
}
