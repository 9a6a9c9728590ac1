package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gearline/gearline/internal/daemon"
	"github.com/gearline/gearline/internal/sim"
	"github.com/gearline/gearline/internal/sim/catalog"
)

var tickCount int

func init() {
	tickCmd.Flags().IntVarP(&tickCount, "count", "n", 1, "Number of ticks to run")
	rootCmd.AddCommand(tickCmd)
}

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run the simulation offline for N ticks and print the network",
	Long:  `Run N ticks against the built-in demo world (no daemon, no persistence) and print the resulting network snapshot.`,
	RunE:  runTick,
}

func runTick(cmd *cobra.Command, args []string) error {
	if tickCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.New(cfg.Sim.MotorSpeed)
	if err != nil {
		return err
	}

	host := daemon.BuildDemoWorld()
	simulator := sim.New(sim.Config{
		ScanRadius: cfg.Sim.ScanRadius,
		MotorSpeed: cfg.Sim.MotorSpeed,
		SpeedUnit:  cfg.Sim.SpeedUnit,
	}, cat, host, sim.Options{})

	for i := 0; i < tickCount; i++ {
		simulator.Tick()
	}

	printSnapshot(simulator.Snapshot())
	return nil
}

func printSnapshot(snap sim.Snapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"COORD", "BLOCK", "KIND", "SPEED", "DIRECTION", "STRESS", "POWERED"})

	for _, key := range sortedKeys(snap.Nodes) {
		n := snap.Nodes[key]
		t.AppendRow(table.Row{
			key,
			n.Block,
			n.Kind,
			fmt.Sprintf("%.1f", n.Speed),
			fmt.Sprintf("(%d,%d,%d)", n.Direction.X, n.Direction.Y, n.Direction.Z),
			fmt.Sprintf("%.2f", n.Stress),
			n.Powered,
		})
	}
	t.Render()

	fmt.Printf("\ntick %d: stress %.2f / capacity %.2f", snap.Tick, snap.Stress, snap.Capacity)
	if snap.Overloaded {
		fmt.Print("  [OVERLOADED]")
	}
	fmt.Println()

	if len(snap.Processes) > 0 {
		p := table.NewWriter()
		p.SetOutputMirror(os.Stdout)
		p.AppendHeader(table.Row{"COORD", "KIND", "RECIPE", "OUTPUT", "REMAINING"})
		for _, proc := range snap.Processes {
			p.AppendRow(table.Row{proc.Coord.Key(), proc.Kind, proc.Recipe, proc.Output, proc.Remaining})
		}
		p.Render()
	}
}

func sortedKeys(nodes map[string]sim.NodeView) []string {
	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
