package model

// WaggonType is the closed set of waggon kinds.
type WaggonType string

const (
	WaggonPassenger  WaggonType = "PASSENGER"
	WaggonDiner      WaggonType = "DINER"
	WaggonSleeper    WaggonType = "SLEEPER"
	WaggonFreight    WaggonType = "FREIGHT"
	WaggonCarCarrier WaggonType = "CAR_CARRIER"
)

// WaggonSpec carries every field needed to construct a Waggon.
type WaggonSpec struct {
	Attributes
	Type WaggonType `json:"type" validate:"required,oneof=PASSENGER DINER SLEEPER FREIGHT CAR_CARRIER"`
}

// Waggon carries passengers and/or freight.
type Waggon struct {
	vehicle
	waggonType WaggonType
}

// NewWaggon builds a waggon from spec and validates it before returning.
// A nil val uses a fresh default Validator.
func NewWaggon(val *Validator, spec WaggonSpec) (*Waggon, error) {
	w := &Waggon{vehicle: vehicle{attrs: spec.Attributes}, waggonType: spec.Type}
	if err := w.Validate(val); err != nil {
		return nil, err
	}
	return w, nil
}

// Type returns the waggon kind.
func (w *Waggon) Type() WaggonType { return w.waggonType }

func (w *Waggon) Kind() Kind { return KindWaggon }

// Spec returns the construction values of the waggon.
func (w *Waggon) Spec() WaggonSpec {
	return WaggonSpec{Attributes: w.attrs, Type: w.waggonType}
}

func (w *Waggon) Validate(val *Validator) error {
	return orDefault(val).Check(string(KindWaggon), w.Spec())
}

func (w *Waggon) base() *vehicle {
	if w == nil {
		return nil
	}
	return &w.vehicle
}
