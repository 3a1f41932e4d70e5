package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/pulsesim"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "pulsedeck",
		Short: "Pulsed-power transient circuit simulator",
	}

	var dtOverride, endTimeOverride, resolutionOverride float64

	validateCmd := &cobra.Command{
		Use:   "validate [deck-file]",
		Short: "Compile a deck and report its node/branch/probe counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := compileFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("OK: %d nodes, %d blocks, %d branches, %d attachments, %d probes\n",
				c.N(), len(c.Blocks), len(c.Branches), len(c.Attachments), len(c.Probes))
			fmt.Printf("  dt=%g end-time=%g\n", c.Dt, c.TEnd)
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [deck-file]",
		Short: "Compile and run a deck to completion, printing final probe values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := compileFile(args[0])
			if err != nil {
				return err
			}
			applyOverrides(c, dtOverride, endTimeOverride, resolutionOverride)

			run := pulsesim.NewRun(c)
			log.Info().Float64("dt", c.Dt).Float64("end_time", c.TEnd).Int("nodes", c.N()).Msg("starting run")
			if err := run.Run(); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			log.Info().Uint64("steps", run.Solver.Stats.Steps.Load()).
				Uint64("general_solve", run.Solver.Stats.GeneralSolve.Load()).Msg("run complete")

			for _, label := range run.Registry.Labels() {
				v, err := run.Probe(label)
				if err != nil {
					return err
				}
				fmt.Printf("%s = %g\n", label, v)
			}
			return nil
		},
	}
	runCmd.Flags().Float64Var(&dtOverride, "dt", 0, "Override TIME-STEP (0 = use deck value)")
	runCmd.Flags().Float64Var(&endTimeOverride, "end-time", 0, "Override END-TIME (0 = use deck value)")
	runCmd.Flags().Float64Var(&resolutionOverride, "resolution", 0, "Accepted but ignored: TRL segment counts are fixed when the deck is compiled")

	var output string
	probeTableCmd := &cobra.Command{
		Use:   "probe-table [deck-file]",
		Short: "Compile and run a deck, writing every probe's full time history as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := compileFile(args[0])
			if err != nil {
				return err
			}
			applyOverrides(c, dtOverride, endTimeOverride, resolutionOverride)

			run := pulsesim.NewRun(c)
			if err := run.Run(); err != nil {
				return fmt.Errorf("run: %w", err)
			}

			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := run.Table.WriteCSV(f); err != nil {
					return err
				}
				log.Info().Str("path", output).Int("rows", run.Table.Len()).Msg("wrote probe table")
				return nil
			}
			return run.Table.WriteCSV(w)
		},
	}
	probeTableCmd.Flags().Float64Var(&dtOverride, "dt", 0, "Override TIME-STEP (0 = use deck value)")
	probeTableCmd.Flags().Float64Var(&endTimeOverride, "end-time", 0, "Override END-TIME (0 = use deck value)")
	probeTableCmd.Flags().Float64Var(&resolutionOverride, "resolution", 0, "Accepted but ignored: TRL segment counts are fixed when the deck is compiled")
	probeTableCmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV path (default: stdout)")

	rootCmd.AddCommand(validateCmd, runCmd, probeTableCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("pulsedeck failed")
		os.Exit(1)
	}
}

func compileFile(path string) (*circuit.Circuit, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := pulsesim.Compile(string(text))
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}
	return c, nil
}

// applyOverrides rewrites the circuit's timing scalars when the
// corresponding flag was given a nonzero value. The resolution value is
// discarded: TRL segment counts are already fixed in the compiled
// circuit, so --resolution changes nothing.
func applyOverrides(c *circuit.Circuit, dt, endTime, resolution float64) {
	if dt != 0 {
		c.Dt = dt
	}
	if endTime != 0 {
		c.TEnd = endTime
	}
	_ = resolution
}
