package model

// EngineType is the closed set of engine kinds.
type EngineType string

const (
	EngineDiesel   EngineType = "DIESEL"
	EngineElectric EngineType = "ELECTRIC"
	EngineSteam    EngineType = "STEAM"
)

// EngineSpec carries every field needed to construct an Engine.
type EngineSpec struct {
	Attributes
	Traction int        `json:"traction" validate:"min=5000"`
	Type     EngineType `json:"type" validate:"required,oneof=DIESEL ELECTRIC STEAM"`
}

// Engine is a traction-providing vehicle.
type Engine struct {
	vehicle
	traction   int
	engineType EngineType
}

// NewEngine builds an engine from spec and validates it before returning.
// A nil val uses a fresh default Validator.
func NewEngine(val *Validator, spec EngineSpec) (*Engine, error) {
	e := &Engine{
		vehicle:    vehicle{attrs: spec.Attributes},
		traction:   spec.Traction,
		engineType: spec.Type,
	}
	if err := e.Validate(val); err != nil {
		return nil, err
	}
	return e, nil
}

// Traction returns the pulling-force rating.
func (e *Engine) Traction() int { return e.traction }

// Type returns the engine kind.
func (e *Engine) Type() EngineType { return e.engineType }

func (e *Engine) Kind() Kind { return KindEngine }

// Spec returns the construction values of the engine.
func (e *Engine) Spec() EngineSpec {
	return EngineSpec{Attributes: e.attrs, Traction: e.traction, Type: e.engineType}
}

func (e *Engine) Validate(val *Validator) error {
	return orDefault(val).Check(string(KindEngine), e.Spec())
}

func (e *Engine) base() *vehicle {
	if e == nil {
		return nil
	}
	return &e.vehicle
}
