// Package audit sequences the probes and assembles the posture report.
package audit

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/log"
	"github.com/girste/posture/internal/probes"
)

// Section groups one probe's results.
type Section struct {
	Probe   string               `json:"probe"`
	Results []probes.CheckResult `json:"results"`
}

// Summary tallies check outcomes across all sections.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// Report is one complete audit run.
type Report struct {
	ID              string        `json:"id"`
	Hostname        string        `json:"hostname"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration_ns"`
	Sections        []Section     `json:"sections"`
	Summary         Summary       `json:"summary"`
	Recommendations []string      `json:"recommendations"`
}

// HasFailures reports whether any check failed.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0
}

// HasFindings reports whether anything deviated, warnings included.
func (r *Report) HasFindings() bool {
	return r.Summary.Failed > 0 || r.Summary.Warnings > 0
}

// Runner executes the probe sequence against one inspector.
type Runner struct {
	insp   inspect.Inspector
	cfg    *config.Config
	logger *zap.Logger
}

// NewRunner creates a runner for the given inspector and config.
func NewRunner(insp inspect.Inspector, cfg *config.Config) *Runner {
	return &Runner{
		insp:   insp,
		cfg:    cfg,
		logger: log.NewZap("audit"),
	}
}

// Run executes every enabled probe in its fixed order and assembles the
// report. Probes run strictly sequentially; each probe's own timeout
// bounds a hung external call. A probe can degrade to Fail results but
// never stops the sequence.
func (r *Runner) Run(ctx context.Context) *Report {
	started := time.Now()
	report := &Report{
		ID:        uuid.New().String(),
		StartedAt: started.UTC(),
	}
	if hostname, err := os.Hostname(); err == nil {
		report.Hostname = hostname
	}

	r.logger.Info("Audit started", zap.String("id", report.ID))

	for _, probe := range probes.Order() {
		if !r.cfg.IsProbeEnabled(probe.Name()) {
			r.logger.Debug("Probe disabled", zap.String("probe", probe.Name()))
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, probe.Timeout())
		results := probe.Run(probeCtx, r.insp, r.cfg)
		cancel()

		report.Sections = append(report.Sections, Section{
			Probe:   probe.Name(),
			Results: results,
		})
		r.logger.Debug("Probe finished",
			zap.String("probe", probe.Name()),
			zap.Int("checks", len(results)))
	}

	report.Summary = tally(report.Sections)
	report.Recommendations = Recommendations(report)
	report.Duration = time.Since(started)

	r.logger.Info("Audit completed",
		zap.String("id", report.ID),
		zap.Duration("duration", report.Duration),
		zap.Int("passed", report.Summary.Passed),
		zap.Int("warnings", report.Summary.Warnings),
		zap.Int("failed", report.Summary.Failed))

	return report
}

func tally(sections []Section) Summary {
	var summary Summary
	for _, section := range sections {
		for _, result := range section.Results {
			summary.Total++
			switch result.Status {
			case probes.StatusPass:
				summary.Passed++
			case probes.StatusWarning:
				summary.Warnings++
			case probes.StatusFail:
				summary.Failed++
			}
		}
	}
	return summary
}
