package cli

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/sim/catalog"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the built-in machines and recipes",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.New(catalog.DefaultMotorSpeed)
	if err != nil {
		return err
	}

	m := table.NewWriter()
	m.SetOutputMirror(os.Stdout)
	m.AppendHeader(table.Row{"BLOCK", "KIND", "SPEED", "CAPACITY", "CONSUMPTION", "HEAT"})
	for _, tpl := range catalog.Machines {
		resolved, _ := cat.TemplateFor(tpl.Block)
		m.AppendRow(table.Row{
			resolved.Block, resolved.Kind, resolved.Speed,
			resolved.StressCapacity, resolved.Consumption, resolved.NeedsHeat,
		})
	}
	m.Render()

	r := table.NewWriter()
	r.SetOutputMirror(os.Stdout)
	r.AppendHeader(table.Row{"TABLE", "INPUTS", "OUTPUT", "COUNT", "TIME", "HEAT"})
	for _, kind := range []domain.ProcessKind{domain.ProcessMilling, domain.ProcessPressing, domain.ProcessMixing} {
		for _, rec := range catalog.Recipes[kind] {
			r.AppendRow(table.Row{kind, rec.Key(), rec.Output, rec.Count, rec.Time, rec.NeedsHeat})
		}
	}
	r.Render()
	return nil
}
