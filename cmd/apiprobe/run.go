package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apiprobe/apiprobe/internal/config"
	"github.com/apiprobe/apiprobe/internal/httpclient"
	"github.com/apiprobe/apiprobe/internal/models"
	"github.com/apiprobe/apiprobe/internal/report"
	"github.com/apiprobe/apiprobe/internal/runner"
	"github.com/apiprobe/apiprobe/internal/suite"
	"github.com/apiprobe/apiprobe/internal/validate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the test suite and write a report",
	Long: `Runs the built-in suite, or one loaded from YAML with --suite, against the
configured base URL. Tests execute strictly in listed order. The report is
written to the report directory and a summary is printed to the console.

Exits 0 when every test passed, 1 when any test failed.`,
	RunE: runRun,
}

var runSuiteFile string

func init() {
	runCmd.Flags().StringVarP(&runSuiteFile, "suite", "s", "", "suite file (default: built-in suite)")
	runCmd.Flags().String("base-url", "", "override target base URL")
	runCmd.Flags().String("format", "", "report format: text, json or xlsx")
	runCmd.Flags().String("report-dir", "", "report output directory")
}

// bindTargetFlags binds the target override flags of the invoked command
// into viper. Binding at invocation time keeps run and watch from fighting
// over the same keys.
func bindTargetFlags(cmd *cobra.Command) {
	viper.BindPFlag("base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("report_format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("report_dir", cmd.Flags().Lookup("report-dir"))
}

func runRun(cmd *cobra.Command, args []string) error {
	bindTargetFlags(cmd)

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := loadSuite(runSuiteFile)
	if err != nil {
		return err
	}

	rep, err := executeSuite(cmd.Context(), cfg, s, logger)
	if err != nil {
		return err
	}

	if rep.Failed() {
		closeLog()
		os.Exit(exitTestFailure)
	}
	return nil
}

// loadSuite returns the built-in suite, or loads one from a YAML file
func loadSuite(path string) (*models.Suite, error) {
	if path == "" {
		return suite.Builtin(), nil
	}
	return suite.Load(path)
}

// executeSuite runs one full pass: execute every test, write the report
// artifact and print the console summary. The summary prints even when the
// artifact could not be written.
func executeSuite(ctx context.Context, cfg *config.Config, s *models.Suite, logger *log.Logger) (*models.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	client := httpclient.New(cfg, logger)
	engine := validate.NewEngine(cfg.MaxResponseTime())
	rep := runner.New(cfg, client, engine, logger).Run(ctx, s)

	writer, err := report.ForFormat(cfg.ReportFormat)
	if err != nil {
		report.PrintSummary(os.Stdout, rep)
		return nil, err
	}

	path := filepath.Join(cfg.ReportDir, report.Filename(cfg.ReportFormat, rep.StartedAt))
	writeErr := writer.Write(rep, path)

	report.PrintSummary(os.Stdout, rep)
	if writeErr != nil {
		return nil, writeErr
	}

	fmt.Printf("Report written to %s\n", path)
	return rep, nil
}
