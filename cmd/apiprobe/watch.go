package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiprobe/apiprobe/internal/schedule"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the test suite repeatedly on a fixed interval",
	Long: `Runs the suite immediately, then again every --every interval. Each run
writes its own timestamped report. A run that takes longer than the interval
is never overlapped by the next one.

Stops on SIGINT/SIGTERM; the exit status reflects the last completed run.`,
	RunE: runWatch,
}

var (
	watchSuiteFile string
	watchEvery     time.Duration
)

func init() {
	watchCmd.Flags().StringVarP(&watchSuiteFile, "suite", "s", "", "suite file (default: built-in suite)")
	watchCmd.Flags().DurationVar(&watchEvery, "every", 5*time.Minute, "interval between runs")
	watchCmd.Flags().String("base-url", "", "override target base URL")
	watchCmd.Flags().String("format", "", "report format: text, json or xlsx")
	watchCmd.Flags().String("report-dir", "", "report output directory")
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	s, err := loadSuite(watchSuiteFile)
	if err != nil {
		return err
	}

	var lastFailed atomic.Bool
	runOnce := func() {
		rep, err := executeSuite(context.Background(), cfg, s, logger)
		if err != nil {
			logger.Printf("watch.run: %v", err)
			lastFailed.Store(true)
			return
		}
		lastFailed.Store(rep.Failed())
	}

	// First run happens before the interval starts ticking
	runOnce()

	scheduler, err := schedule.New(watchEvery, runOnce, logger)
	if err != nil {
		return err
	}
	if err := scheduler.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Printf("watch: shutting down")
	if err := scheduler.Stop(); err != nil {
		logger.Printf("watch: scheduler stop error: %v", err)
	}

	if lastFailed.Load() {
		closeLog()
		os.Exit(exitTestFailure)
	}
	return nil
}
