// Command planner runs deterministic household net-worth projections from a
// YAML plan, exposes them over HTTP, and writes starter templates.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/finplan/household-planner/internal/api"
	"github.com/finplan/household-planner/internal/calculation"
	"github.com/finplan/household-planner/internal/config"
	"github.com/finplan/household-planner/internal/output"
	"github.com/finplan/household-planner/internal/taxtable"
)

var (
	verbose bool
	dbPath  string

	format            string
	outputPath        string
	inflationAdjusted bool

	listenAddr string
)

func main() {
	root := &cobra.Command{
		Use:          "planner",
		Short:        "Deterministic household financial projection",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "tax table database path (default: built-in tables in memory)")

	runCmd := &cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "Run a projection from a plan file",
		Args:  cobra.ExactArgs(1),
		RunE:  runProjection,
	}
	runCmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("output format %v", output.FormatterNames()))
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to file instead of stdout")
	runCmd.Flags().BoolVar(&inflationAdjusted, "inflation-adjusted", false, "report amounts in start-year dollars")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		RunE:  serveAPI,
	}
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "listen address")

	exampleCmd := &cobra.Command{
		Use:   "example <plan.yaml>",
		Short: "Write a starter plan template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if err := parser.SaveToFile(parser.CreateExamplePlan(), args[0]); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	root.AddCommand(runCmd, serveCmd, exampleCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEngine() (*calculation.Engine, func(), error) {
	var store taxtable.Store
	if dbPath != "" {
		s, err := taxtable.NewSQLiteStore(dbPath)
		if err != nil {
			return nil, nil, err
		}
		store = s
	} else {
		store = taxtable.NewMemoryStore()
	}

	engine := calculation.NewEngine(store)
	if verbose {
		engine.SetLogger(stdLogger{})
	}
	cleanup := func() { _ = store.Close() }
	return engine, cleanup, nil
}

func runProjection(cmd *cobra.Command, args []string) error {
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown format %q, available: %v", format, output.FormatterNames())
	}

	plan, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return err
	}

	engine, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Run(cmd.Context(), plan)
	if err != nil {
		return err
	}
	if inflationAdjusted || plan.Assumptions.InflationAdjusted {
		result = output.DeflateResult(result, plan.Assumptions.Inflation)
	}

	data, err := formatter.Format(result)
	if err != nil {
		return err
	}
	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func serveAPI(cmd *cobra.Command, args []string) error {
	engine, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	router := api.NewRouter(api.NewHandler(engine))
	log.Printf("listening on %s", listenAddr)
	return http.ListenAndServe(listenAddr, router)
}

// stdLogger adapts the standard library logger to the engine's interface.
type stdLogger struct{}

func (stdLogger) Debugf(format string, args ...any) { log.Printf("DEBUG "+format, args...) }
func (stdLogger) Infof(format string, args ...any)  { log.Printf("INFO "+format, args...) }
func (stdLogger) Warnf(format string, args ...any)  { log.Printf("WARN "+format, args...) }
func (stdLogger) Errorf(format string, args ...any) { log.Printf("ERROR "+format, args...) }
