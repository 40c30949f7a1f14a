package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kilianp07/traindepot/core/model"
	"github.com/kilianp07/traindepot/core/yard"
)

var (
	requireRun bool
	asJSON     bool

	planName       string
	planVehicles   []string
	planPassengers int
	planFreight    int
)

// ErrCannotRun is returned by train check --require-run when a composed
// train is too heavy for its engines.
var ErrCannotRun = errors.New("train can not run")

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train composition commands",
}

var trainCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compose every configured train and report on it",
	RunE:  runTrainCheck,
}

var trainPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compose an ad-hoc train from depot vehicles and report on it",
	RunE:  runTrainPlan,
}

func init() {
	trainCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	trainCheckCmd.Flags().BoolVar(&requireRun, "require-run", false, "fail when a train can not run")
	trainPlanCmd.Flags().StringVar(&planName, "name", "", "train name")
	trainPlanCmd.Flags().StringSliceVar(&planVehicles, "vehicle", nil, "vehicle serial numbers, founding engine first")
	trainPlanCmd.Flags().IntVar(&planPassengers, "passengers", 0, "passengers to board")
	trainPlanCmd.Flags().IntVar(&planFreight, "freight", 0, "freight to load in kg")
	_ = trainPlanCmd.MarkFlagRequired("name")
	_ = trainPlanCmd.MarkFlagRequired("vehicle")
	trainCmd.AddCommand(trainCheckCmd, trainPlanCmd)
	rootCmd.AddCommand(trainCmd)
}

func runTrainCheck(cmd *cobra.Command, args []string) error {
	cfg, d, err := loadDepot()
	if err != nil {
		return err
	}
	y := yard.New(d, nil, nil, nil)
	var snaps []model.Snapshot
	var errs []error
	for _, tp := range cfg.Trains {
		plan, err := tp.ToPlan()
		if err == nil {
			var snap model.Snapshot
			if snap, err = y.Build(plan); err == nil {
				snaps = append(snaps, snap)
				if requireRun && !snap.CanRun {
					errs = append(errs, fmt.Errorf("%w: %q needs %d traction, has %d",
						ErrCannotRun, snap.Name, snap.WeightToMove, snap.Traction))
				}
				continue
			}
		}
		errs = append(errs, fmt.Errorf("train %q: %w", tp.Name, err))
	}
	if err := writeReports(cmd.OutOrStdout(), snaps); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func runTrainPlan(cmd *cobra.Command, args []string) error {
	_, d, err := loadDepot()
	if err != nil {
		return err
	}
	plan := yard.Plan{Name: planName, Passengers: planPassengers, Freight: planFreight}
	for _, s := range planVehicles {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("vehicle %q: %w", s, err)
		}
		plan.Vehicles = append(plan.Vehicles, id)
	}
	snap, err := yard.New(d, nil, nil, nil).Build(plan)
	if err != nil {
		return err
	}
	return writeReports(cmd.OutOrStdout(), []model.Snapshot{snap})
}

func writeReports(out io.Writer, snaps []model.Snapshot) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snaps)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAIN\tVEHICLES\tPASSENGERS\tFREIGHT\tWEIGHT\tTO MOVE\tTRACTION\tLENGTH\tCONDUCTORS\tCAN RUN")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%d\t%d/%d\t%d/%d\t%d\t%d\t%d\t%d\t%d\t%t\n",
			s.Name, len(s.Vehicles), s.Passengers, s.PassengerCapacity, s.FreightWeight, s.FreightCapacity,
			s.OverallWeight, s.WeightToMove, s.Traction, s.Length, s.Conductors, s.CanRun)
	}
	return w.Flush()
}
