package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goinsight/adapters/stats/timeseries"
	"goinsight/app"
	"goinsight/domain/dataset"
	"goinsight/internal/config"
	"goinsight/internal/errors"
	"goinsight/internal/testkit"
)

func main() {
	// .env is a dev convenience; absence is not an error
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goinsight",
		Short: "Dataset auto-analysis from the command line",
	}

	rootCmd.AddCommand(
		newDemoCmd(),
		newCensusCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func newDemoCmd() *cobra.Command {
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the full analysis sweep on a synthetic retail dataset",
		Long: `Generate a seeded retail orders dataset and run every applicable
analysis over it, printing the assembled report as JSON.

Example: goinsight demo --rows 500 --seed 12345`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), rows, seed)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 240, "Synthetic order rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")

	return cmd
}

func runDemo(ctx context.Context, rows int, seed int64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := cfg.Logger(os.Stderr)

	ds, err := demoDataset(rows, seed)
	if err != nil {
		return err
	}

	svcCfg := cfg.AutoAnalysis()
	if svcCfg.Seed == 0 {
		svcCfg.Seed = seed
	}
	report, err := app.NewAutoAnalysisService(log, svcCfg).Run(ctx, ds)
	if err != nil {
		return errors.Wrap(err, "run auto analysis")
	}

	fmt.Printf("📊 ANALYSIS REPORT (%s)\n", testkit.Describe(ds))
	fmt.Printf("Analyses run: %d, skipped: %d, runtime: %dms\n\n",
		report.FamilyCount(), len(report.Skipped), report.RuntimeMS)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	fmt.Println(string(out))
	return nil
}

func newCensusCmd() *cobra.Command {
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "census",
		Short: "Profile a synthetic dataset column by column",
		Long: `Generate a seeded retail orders dataset and print the column census
the auto-analysis planner would see: which columns profile as measures,
dimensions or time indexes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCensus(rows, seed)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 240, "Synthetic order rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")

	return cmd
}

func runCensus(rows int, seed int64) error {
	ds, err := demoDataset(rows, seed)
	if err != nil {
		return err
	}

	census := dataset.Describe(ds)
	dateCols := map[string]bool{}
	for _, score := range timeseries.DetectDateColumns(ds) {
		dateCols[score.Column] = true
	}

	fmt.Printf("🔎 COLUMN CENSUS (%s)\n\n", testkit.Describe(ds))
	for _, p := range census.Profiles {
		fmt.Printf("• %s (%s)\n", p.Name, p.Type)
		fmt.Printf("  non-null: %d, distinct: %d", p.NonNull, p.Distinct)
		if p.Numeric() {
			fmt.Printf(", mean: %.2f, min: %.2f, max: %.2f", p.Mean, p.Min, p.Max)
		}
		fmt.Println()
		fmt.Printf("  roles: %s\n", roles(p, dateCols[p.Name]))
	}
	return nil
}

func demoDataset(rows int, seed int64) (*dataset.Dataset, error) {
	if rows < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("rows must be positive, got %d", rows))
	}
	genCfg := testkit.DefaultRetailConfig()
	if rows > 0 {
		genCfg.Rows = rows
	}
	genCfg.Seed = seed
	ds, err := testkit.RetailDataset(genCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "generate demo dataset (%d rows)", rows)
	}
	return ds, nil
}

func roles(p dataset.ColumnProfile, isDate bool) string {
	var out []string
	if p.Numeric() {
		out = append(out, "measure")
	}
	if p.Categorical() {
		out = append(out, "dimension")
	}
	if isDate {
		out = append(out, "time index")
	}
	if len(out) == 0 {
		return "none"
	}
	return strings.Join(out, ", ")
}
