package depot

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/traindepot/core/model"
)

func attrs(serial uuid.UUID) model.Attributes {
	return model.Attributes{
		SerialNumber:      serial,
		TypeName:          "Taurus",
		Manufacturer:      "Siemens",
		ManufactureYear:   2000,
		EmptyWeight:       6000,
		Length:            15,
		PassengerCapacity: 40,
	}
}

func engine(t *testing.T, serial uuid.UUID) *model.Engine {
	t.Helper()
	e, err := model.NewEngine(nil, model.EngineSpec{Attributes: attrs(serial), Traction: 9000, Type: model.EngineElectric})
	require.NoError(t, err)
	return e
}

func waggon(t *testing.T, serial uuid.UUID) *model.Waggon {
	t.Helper()
	w, err := model.NewWaggon(nil, model.WaggonSpec{Attributes: attrs(serial), Type: model.WaggonSleeper})
	require.NoError(t, err)
	return w
}

func TestNewDepot(t *testing.T) {
	e0, e1 := engine(t, uuid.New()), engine(t, uuid.New())
	w0 := waggon(t, uuid.New())
	d, err := New(model.NewValidator(), []*model.Engine{e0, e1}, []*model.Waggon{w0})
	require.NoError(t, err)

	assert.Equal(t, []*model.Engine{e0, e1}, d.Engines())
	assert.Equal(t, []*model.Waggon{w0}, d.Waggons())
	assert.Equal(t, []model.Vehicle{e0, e1, w0}, d.Vehicles())
	assert.Equal(t, 3, d.Len())

	v, ok := d.Lookup(w0.SerialNumber())
	require.True(t, ok)
	assert.Same(t, w0, v)

	_, ok = d.Engine(w0.SerialNumber())
	assert.False(t, ok, "waggon must not resolve as engine")
	got, ok := d.Engine(e1.SerialNumber())
	require.True(t, ok)
	assert.Same(t, e1, got)

	_, ok = d.Lookup(uuid.New())
	assert.False(t, ok)
}

func TestDepotViewsAreReadOnly(t *testing.T) {
	e0 := engine(t, uuid.New())
	d, err := New(nil, []*model.Engine{e0}, nil)
	require.NoError(t, err)
	es := d.Engines()
	es[0] = nil
	assert.Same(t, e0, d.Engines()[0])
}

func TestNewDepotDuplicateSerial(t *testing.T) {
	shared := uuid.New()
	cases := map[string]struct {
		engines []*model.Engine
		waggons []*model.Waggon
	}{
		"engines":       {engines: []*model.Engine{engine(t, shared), engine(t, shared)}},
		"waggons":       {waggons: []*model.Waggon{waggon(t, shared), waggon(t, shared)}},
		"across":        {engines: []*model.Engine{engine(t, shared)}, waggons: []*model.Waggon{waggon(t, shared)}},
		"after-others":  {engines: []*model.Engine{engine(t, uuid.New())}, waggons: []*model.Waggon{waggon(t, uuid.New()), waggon(t, shared), waggon(t, shared)}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := New(nil, c.engines, c.waggons)
			assert.Nil(t, d)
			require.ErrorIs(t, err, model.ErrDuplicateSerial)
			var dup *model.DuplicateSerialError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, shared, dup.Serial)
			assert.Contains(t, err.Error(), shared.String())
		})
	}
}

func TestNewDepotReportsFirstDuplicate(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	engines := []*model.Engine{engine(t, a), engine(t, b), engine(t, b)}
	waggons := []*model.Waggon{waggon(t, a)}
	_, err := New(nil, engines, waggons)
	var dup *model.DuplicateSerialError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, b, dup.Serial)
}

func TestNewDepotNilEntry(t *testing.T) {
	_, err := New(nil, []*model.Engine{nil}, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = New(nil, nil, []*model.Waggon{waggon(t, uuid.New()), nil})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestDepotIdle(t *testing.T) {
	e0, e1 := engine(t, uuid.New()), engine(t, uuid.New())
	w0 := waggon(t, uuid.New())
	d, err := New(nil, []*model.Engine{e0, e1}, []*model.Waggon{w0})
	require.NoError(t, err)

	train, err := model.NewTrain("IC 1", e0)
	require.NoError(t, err)
	require.NoError(t, train.Add(w0))
	assert.Equal(t, []model.Vehicle{e1}, d.Idle())
}

func TestNewDepotRevalidates(t *testing.T) {
	// a zero value bypasses the smart constructor
	_, err := New(nil, []*model.Engine{{}}, nil)
	require.ErrorIs(t, err, model.ErrValidation)
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields(), "serialNumber")
	assert.Contains(t, vErr.Fields(), "traction")
}
