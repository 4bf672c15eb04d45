package runner

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/apiprobe/apiprobe/internal/config"
	"github.com/apiprobe/apiprobe/internal/httpclient"
	"github.com/apiprobe/apiprobe/internal/models"
	"github.com/apiprobe/apiprobe/internal/stats"
	"github.com/apiprobe/apiprobe/internal/validate"
)

// Runner executes a suite strictly in listed order, one test at a time.
// Per-test failures of any kind are recorded in the report and never abort
// the remaining tests.
type Runner struct {
	cfg    *config.Config
	client *httpclient.Client
	engine *validate.Engine
	logger *log.Logger
}

// New creates a runner wired to a client and validation engine
func New(cfg *config.Config, client *httpclient.Client, engine *validate.Engine, logger *log.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		client: client,
		engine: engine,
		logger: logger,
	}
}

// Run executes every definition in the suite and aggregates the verdicts.
// A transport failure fails that single test; the run continues with the
// next definition.
func (r *Runner) Run(ctx context.Context, suite *models.Suite) *models.Report {
	report := &models.Report{
		ID:        uuid.New().String(),
		SuiteName: suite.Name,
		BaseURL:   r.cfg.BaseURL,
		StartedAt: time.Now(),
		Results:   make([]models.TestResult, 0, len(suite.Tests)),
	}

	r.logger.Printf("runner.run: starting suite=%q tests=%d base_url=%s run_id=%s",
		suite.Name, len(suite.Tests), r.cfg.BaseURL, report.ID)

	collector := stats.NewCollector()
	start := time.Now()
	for _, def := range suite.Tests {
		outcome := r.client.Send(ctx, def)
		result := r.engine.Validate(def, outcome)
		if outcome.Received() {
			collector.Record(outcome.Elapsed)
		}
		report.Results = append(report.Results, result)
		r.logResult(result)
	}

	report.Summary = summarize(report.Results, time.Since(start))
	report.Latency = collector.Snapshot()

	r.logger.Printf("runner.run: finished suite=%q total=%d passed=%d failed=%d elapsed=%.2fs",
		suite.Name, report.Summary.Total, report.Summary.Passed, report.Summary.Failed,
		report.Summary.ElapsedSeconds)
	return report
}

// logResult writes one verdict line per executed test
func (r *Runner) logResult(result models.TestResult) {
	verdict := "PASS"
	if !result.Passed {
		verdict = "FAIL"
	}
	r.logger.Printf("runner.test: %s name=%q status=%d time=%.2fs",
		verdict, result.Name, result.StatusObserved, result.ElapsedSeconds)
	for _, detail := range result.FailureDetails {
		r.logger.Printf("runner.test:   - %s", detail)
	}
}

func summarize(results []models.TestResult, elapsed time.Duration) models.RunSummary {
	summary := models.RunSummary{
		Total:          len(results),
		ElapsedSeconds: elapsed.Seconds(),
	}
	for _, res := range results {
		if res.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary
}
