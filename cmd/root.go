package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/pearlsim/sim"
	"github.com/inference-sim/pearlsim/sim/pipeline"
	"github.com/inference-sim/pearlsim/sim/trace"
)

var (
	logLevel      string // Log verbosity level
	abilitiesPath string // Optional ability table override; bundled table when empty
	traceLevel    string // Decision trace level (none, decisions)
)

// rootCmd reads one state per line on stdin and writes one action line per state on stdout
var rootCmd = &cobra.Command{
	Use:   "pearlsim",
	Short: "Per-tick pearl routing decisions for a network of workers",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		table, err := loadAbilities(abilitiesPath)
		if err != nil {
			logrus.Fatalf("Failed to load ability table: %v", err)
		}
		logrus.Infof("Loaded ability table with flavors %v", table.Flavors())

		dt := trace.NewDecisionTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		ticks, err := run(os.Stdin, os.Stdout, table, dt)
		if err != nil {
			logrus.Fatalf("Routing stopped after %d ticks: %v", ticks, err)
		}

		if dt.Config.Enabled() {
			s := trace.Summarize(dt)
			logrus.Infof("Trace summary: decisions=%d ticks=%d returns=%d offloads=%d noms=%d destinations=%d mean_offload_gain=%.2f",
				s.TotalDecisions, s.Ticks, s.ReturnCount, s.OffloadCount, s.NomCount, s.UniqueDestinations, s.MeanOffloadGain)
		}
		logrus.Infof("Input ended after %d ticks.", ticks)
	},
}

// abilitiesCmd prints the ability table that routing would use
var abilitiesCmd = &cobra.Command{
	Use:   "abilities",
	Short: "Print the ability table as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		table, err := loadAbilities(abilitiesPath)
		if err != nil {
			logrus.Fatalf("Failed to load ability table: %v", err)
		}
		if err := writeAbilities(cmd.OutOrStdout(), table); err != nil {
			logrus.Fatalf("Failed to print ability table: %v", err)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
}

// loadAbilities returns the bundled table unless path is set.
func loadAbilities(path string) (*sim.AbilityTable, error) {
	if path == "" {
		return sim.DefaultAbilityTable()
	}
	return sim.LoadAbilityTable(path)
}

// run drives the pipeline to the end of r and reports how many ticks completed.
func run(r io.Reader, w io.Writer, table *sim.AbilityTable, dt *trace.DecisionTrace) (int, error) {
	p := pipeline.New(sim.NewRouter(table, sim.WithTrace(dt)))
	err := p.Run(r, w)
	logrus.Debugf("Neighbor graph reused on %d of %d ticks", p.GraphCacheHits(), p.Ticks())
	return p.Ticks(), err
}

func writeAbilities(w io.Writer, table *sim.AbilityTable) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(table.Rates()); err != nil {
		return fmt.Errorf("encoding ability table: %w", err)
	}
	return enc.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&abilitiesPath, "abilities", "", "Path to an ability table (YAML or JSON); defaults to the bundled table")
	rootCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	// Attach `abilities` as a subcommand to `root`
	rootCmd.AddCommand(abilitiesCmd)
}
