package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/traindepot/config"
	"github.com/kilianp07/traindepot/core/depot"
	"github.com/kilianp07/traindepot/core/model"
)

var depotCmd = &cobra.Command{
	Use:   "depot",
	Short: "Depot related commands",
}

var depotLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the vehicles of the configured depot",
	RunE:  runDepotLs,
}

func init() {
	depotCmd.AddCommand(depotLsCmd)
	rootCmd.AddCommand(depotCmd)
}

func loadDepot() (*config.Config, *depot.Depot, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	d, err := cfg.Depot.Build(model.NewValidator())
	if err != nil {
		return nil, nil, fmt.Errorf("depot: %w", err)
	}
	return cfg, d, nil
}

func runDepotLs(cmd *cobra.Command, args []string) error {
	_, d, err := loadDepot()
	if err != nil {
		return err
	}
	return writeVehicles(cmd.OutOrStdout(), d.Vehicles())
}

func writeVehicles(out io.Writer, vehicles []model.Vehicle) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSERIAL\tCLASS\tTYPE\tMANUFACTURER\tYEAR\tWEIGHT\tLENGTH\tSEATS\tFREIGHT\tTRACTION")
	for _, v := range vehicles {
		a := v.Attributes()
		class, traction := "", "-"
		switch x := v.(type) {
		case *model.Engine:
			class, traction = string(x.Type()), fmt.Sprint(x.Traction())
		case *model.Waggon:
			class = string(x.Type())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			v.Kind(), a.SerialNumber, class, a.TypeName, a.Manufacturer, a.ManufactureYear,
			a.EmptyWeight, a.Length, a.PassengerCapacity, a.FreightCapacity, traction)
	}
	return w.Flush()
}
