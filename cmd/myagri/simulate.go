package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/myagri"
	lifecycleadapter "github.com/aretw0/myagri/pkg/adapters/lifecycle"
	"github.com/aretw0/myagri/pkg/sim"
)

var (
	simSpeed int
	simDays  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the crop season simulation in the terminal",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		snapshots := make(chan sim.Snapshot, sim.Horizon)
		driver := myagri.NewDriver(
			myagri.WithSpeed(simSpeed),
			sim.WithLogger(slog.Default()),
			myagri.WithOnChange(func(s sim.Snapshot) {
				select {
				case snapshots <- s:
				case <-ctx.Done():
				}
			}),
		)
		defer driver.Close()

		src := lifecycleadapter.NewSimulationSource(snapshots)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start simulation source", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, simulationBanner(driver))
		driver.Play()

		for e := range src.Events() {
			s, ok := e.(sim.Snapshot)
			if !ok {
				continue
			}
			if p, ok := s.Latest(); ok {
				fmt.Fprintf(out, "%s  %s\n", s, p)
			}
			if s.Phase == sim.PhaseFinished || (simDays > 0 && s.Day >= simDays) {
				stop()
				driver.Pause()
			}
		}
		fmt.Fprintln(out, driver.Snapshot())
	},
}

// simulationBanner reports the effective speed, after clamping.
func simulationBanner(d *sim.Driver) string {
	return fmt.Sprintf("Simulation x%d, one day every %s (Ctrl+C to stop)", d.Snapshot().Speed, d.Period())
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVar(&simSpeed, "speed", sim.MinSpeed, "Speed multiplier between 1 and 5")
	simulateCmd.Flags().IntVar(&simDays, "days", 0, "Stop after this many days (default: whole season)")
}
