package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/traindepot/core/model"
)

const (
	strongEngine = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	weakEngine   = "0f8fad5b-d9cb-469f-a165-70867728950e"
	waggon1      = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	waggon2      = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

const testConfig = `depot:
  engines:
    - serial_number: "` + strongEngine + `"
      type_name: Taurus
      manufacturer: Siemens
      manufacture_year: 2000
      empty_weight: 6000
      length: 19
      traction: 30000
      type: ELECTRIC
    - serial_number: "` + weakEngine + `"
      type_name: Glaskasten
      manufacturer: Krauss
      manufacture_year: 1930
      empty_weight: 6000
      length: 10
      traction: 5000
      type: STEAM
  waggons:
    - serial_number: "` + waggon1 + `"
      type_name: Bmz
      manufacturer: Jenbacher
      manufacture_year: 1990
      empty_weight: 6000
      length: 26
      passenger_capacity: 40
      type: PASSENGER
    - serial_number: "` + waggon2 + `"
      type_name: Bmz
      manufacturer: Jenbacher
      manufacture_year: 1990
      empty_weight: 6000
      length: 26
      passenger_capacity: 40
      type: PASSENGER
trains:
  - name: IC 1
    vehicles: ["` + strongEngine + `", "` + waggon1 + `"]
    passengers: 10
  - name: Bummelzug
    vehicles: ["` + weakEngine + `", "` + waggon2 + `"]
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// execute runs the CLI with fresh flag values and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	requireRun, asJSON = false, false
	planName, planVehicles, planPassengers, planFreight = "", nil, 0, 0
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDepotLs(t *testing.T) {
	path := writeConfig(t, testConfig)
	out, err := execute(t, "depot", "ls", "-c", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "SERIAL")
	assert.Contains(t, lines[1], strongEngine)
	assert.Contains(t, lines[1], "ELECTRIC")
	assert.Contains(t, lines[4], "PASSENGER")
}

func TestTrainCheck(t *testing.T) {
	path := writeConfig(t, testConfig)
	out, err := execute(t, "train", "check", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "IC 1")
	assert.Contains(t, out, "Bummelzug")
}

func TestTrainCheckRequireRun(t *testing.T) {
	path := writeConfig(t, testConfig)
	_, err := execute(t, "train", "check", "--require-run", "-c", path)
	require.ErrorIs(t, err, ErrCannotRun)
	assert.Contains(t, err.Error(), "Bummelzug")
	assert.NotContains(t, err.Error(), "IC 1")
}

func TestTrainCheckReportsRejectedPlan(t *testing.T) {
	cfg := testConfig + `  - name: Doppelt
    vehicles: ["` + strongEngine + `"]
`
	path := writeConfig(t, cfg)
	out, err := execute(t, "train", "check", "-c", path)
	require.ErrorIs(t, err, model.ErrAlreadyOwned)
	assert.Contains(t, out, "IC 1")
}

func TestTrainPlanJSON(t *testing.T) {
	path := writeConfig(t, testConfig)
	out, err := execute(t, "train", "plan", "-c", path, "--json",
		"--name", "Sonderzug", "--vehicle", strongEngine, "--vehicle", waggon1, "--vehicle", waggon2,
		"--passengers", "51")
	require.NoError(t, err)

	var snaps []model.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 1)
	s := snaps[0]
	assert.Equal(t, "Sonderzug", s.Name)
	assert.Equal(t, 80, s.PassengerCapacity)
	assert.Equal(t, 51, s.Passengers)
	assert.Equal(t, 2, s.Conductors)
	assert.Equal(t, 18000+80*model.PassengerWeight-6000, s.WeightToMove)
	assert.True(t, s.CanRun)
}

func TestTrainPlanRejected(t *testing.T) {
	path := writeConfig(t, testConfig)
	_, err := execute(t, "train", "plan", "-c", path, "--name", "X", "--vehicle", waggon1)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = execute(t, "train", "plan", "-c", path, "--name", "X", "--vehicle", "nope")
	assert.ErrorContains(t, err, "nope")
}

func TestLoadConfigError(t *testing.T) {
	_, err := execute(t, "depot", "ls", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "load config")
}
