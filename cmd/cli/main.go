package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"linfer/adapters/excel"
	"linfer/adapters/gibbs"
	"linfer/adapters/ols"
	"linfer/adapters/postgres"
	"linfer/adapters/report"
	"linfer/adapters/simulate"
	"linfer/app"
	"linfer/domain/dataset"
	"linfer/domain/diagnostic"
	"linfer/internal"
	"linfer/internal/config"
	"linfer/internal/testkit"
	"linfer/ports"
	"linfer/ui"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "linfer",
		Short: "Linear regression and Bayesian inference comparison runs",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newDiagnosticCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		seed       int64
		n          int
		beta       float64
		sigma      float64
		level      float64
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Simulate a dataset, fit it both ways and print the comparison report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			params := dataset.GeneratingParams{
				Seed:  seed,
				N:     n,
				Beta:  beta,
				Sigma: sigma,
				XMin:  -10,
				XMax:  10,
			}

			service, cleanup, err := buildAnalysisService(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := ports.SampleOptions{
				Seed:   seed,
				Draws:  cfg.Analysis.Draws,
				BurnIn: cfg.Analysis.BurnIn,
				Chains: cfg.Analysis.Chains,
				Level:  level,
			}
			result, err := service.Run(cmd.Context(), app.RunRequest{
				Params:      params,
				Level:       level,
				SamplerOpts: &opts,
				KeepDataset: exportPath != "",
			})
			if err != nil {
				return err
			}

			renderer := report.NewRenderer()
			fmt.Println(renderer.BuildMarkdown(result))

			if exportPath != "" {
				if err := excel.NewExporter().Export(result, exportPath); err != nil {
					return err
				}
				fmt.Printf("workbook written to %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "simulation seed")
	cmd.Flags().IntVar(&n, "n", 100, "number of observations")
	cmd.Flags().Float64Var(&beta, "beta", 1.0, "true slope")
	cmd.Flags().Float64Var(&sigma, "sigma", 2.0, "noise standard deviation")
	cmd.Flags().Float64Var(&level, "level", 0.95, "interval level")
	cmd.Flags().StringVar(&exportPath, "export", "", "write run to an xlsx workbook")
	return cmd
}

func newDiagnosticCmd() *cobra.Command {
	var (
		prevalence  float64
		sensitivity float64
		specificity float64
	)

	cmd := &cobra.Command{
		Use:   "diagnostic",
		Short: "Apply Bayes' rule to a diagnostic-test scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := diagnostic.TestScenario{
				Prevalence:  prevalence,
				Sensitivity: sensitivity,
				Specificity: specificity,
			}

			result, err := app.NewDiagnosticService().Evaluate(cmd.Context(), scenario)
			if err != nil {
				return err
			}

			fmt.Println(report.NewRenderer().BuildDiagnosticMarkdown(result))
			return nil
		},
	}

	cmd.Flags().Float64Var(&prevalence, "prevalence", 0.10, "base rate of the condition")
	cmd.Flags().Float64Var(&sensitivity, "sensitivity", 0.93, "true-positive rate")
	cmd.Flags().Float64Var(&specificity, "specificity", 0.98, "true-negative rate")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve runs and reports over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			logger := internal.NewDefaultLogger()

			service, cleanup, err := buildAnalysisService(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			server := ui.NewServer(service, app.NewDiagnosticService(), report.NewRenderer(), logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx, ui.Config{Port: cfg.Server.Port})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

// buildAnalysisService wires the pipeline against postgres when a
// DATABASE_URL is configured, in-memory storage otherwise.
func buildAnalysisService(cfg *config.Config) (*app.AnalysisService, func(), error) {
	rng := simulate.NewRNG()
	simulator := simulate.NewSimulator(rng)
	fitter := ols.NewFitter()
	sampler := gibbs.NewSampler()

	if !cfg.Database.Enabled {
		kit := testkit.NewTestKit()
		return app.NewAnalysisService(simulator, fitter, sampler, kit.RunRepository()), func() {}, nil
	}

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := postgres.NewRunRepository(db)
	cleanup := func() { db.Close() }
	return app.NewAnalysisService(simulator, fitter, sampler, repo), cleanup, nil
}
