package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/myagri"
	"github.com/aretw0/myagri/pkg/diagnosis"
)

var (
	cropType    string
	growthStage string
	location    string
	analyzeWait time.Duration
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Run the crop diagnosis on a JPEG or PNG photo",
	Long: `Run the crop diagnosis on a JPEG or PNG photo.

Crop types: ` + strings.Join(diagnosis.CropTypes, ", ") + `
Growth stages: ` + strings.Join(diagnosis.GrowthStages, ", "),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Failed to read image", err)
		}
		img := diagnosis.NewImage(args[0], data)

		var cc *diagnosis.CropContext
		if cropType != "" || growthStage != "" || location != "" {
			cc = &diagnosis.CropContext{CropType: cropType, GrowthStage: growthStage, Location: location}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		analyzer := myagri.NewAnalyzer(myagri.WithDelay(analyzeWait), diagnosis.WithLogger(slog.Default()))
		if analyzeWait > 0 {
			fmt.Fprintln(os.Stderr, "Analyse en cours...")
		}
		result, err := analyzer.Analyze(ctx, img, cc)
		if err != nil {
			fatal("Analysis failed", err)
		}

		if analyzeJSON {
			writeJSON(cmd.OutOrStdout(), result)
			return
		}
		printResult(cmd, result)
	},
}

func printResult(cmd *cobra.Command, r diagnosis.Result) {
	out := cmd.OutOrStdout()
	p := r.Problem
	fmt.Fprintf(out, "%s (%s)\n", p.CommonName, p.ScientificName)
	fmt.Fprintf(out, "Stade: %s, impact estimé: %d%%\n\n", p.Stage, p.ImpactPercent)
	fmt.Fprintln(out, p.Description)

	section := func(title string, items []string) {
		fmt.Fprintf(out, "\n%s\n", title)
		for _, item := range items {
			fmt.Fprintf(out, "  - %s\n", item)
		}
	}
	section("Symptômes", p.Symptoms)
	section("Solutions biologiques", r.Solutions.Biological)
	section("Solutions conventionnelles", r.Solutions.Conventional)
	section("Prévention", r.Solutions.Preventive)

	fmt.Fprintf(out, "\nCalendrier: %s\n", r.Timeline)
	fmt.Fprintf(out, "Coûts: %d€/ha (bio), %d€/ha (conventionnel)\n", r.Costs.Biological, r.Costs.Conventional)
	if r.Context != nil {
		fmt.Fprintln(out, r.Context)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&cropType, "crop", "", "Crop type")
	analyzeCmd.Flags().StringVar(&growthStage, "stage", "", "Growth stage")
	analyzeCmd.Flags().StringVar(&location, "location", "", "Field location")
	analyzeCmd.Flags().DurationVar(&analyzeWait, "delay", diagnosis.DefaultDelay, "Simulated analysis time")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output in JSON format")
}
