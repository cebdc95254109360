// Package watch re-audits the host on an interval and reports checks
// whose status drifted since the previous cycle.
package watch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/log"
	"github.com/girste/posture/internal/notify"
	"github.com/girste/posture/internal/output"
)

// Watcher re-runs the audit on a fixed interval. The previous report
// is held in memory only; restarting the watcher starts a fresh
// reference.
type Watcher struct {
	runner   *audit.Runner
	cfg      *config.Config
	notifier *notify.Notifier
	interval time.Duration
	logger   *zap.Logger
	prev     *audit.Report
}

// NewWatcher creates a watcher over the given inspector.
func NewWatcher(insp inspect.Inspector, cfg *config.Config) *Watcher {
	return &Watcher{
		runner:   audit.NewRunner(insp, cfg),
		cfg:      cfg,
		notifier: notify.NewNotifier(&cfg.Notifications),
		interval: cfg.WatchInterval(),
		logger:   log.NewZap("watch"),
	}
}

// Run audits immediately, then on every tick until the context is
// cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info("Watch started",
		zap.Duration("interval", w.interval))

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watch stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single watch cycle and returns the drifts found.
// The first cycle returns nothing: it establishes the reference.
func (w *Watcher) RunOnce(ctx context.Context) []Drift {
	report := w.runner.Run(ctx)

	w.logger.Info("Watch cycle finished",
		zap.String("id", report.ID),
		zap.String("summary", output.Summary(report)))

	drifts := Diff(w.prev, report)
	if len(drifts) > 0 {
		w.alert(ctx, report, drifts)
	}
	w.prev = report

	return drifts
}

func (w *Watcher) alert(ctx context.Context, report *audit.Report, drifts []Drift) {
	for _, drift := range drifts {
		w.logger.Warn("Posture drift",
			zap.String("probe", drift.Probe),
			zap.String("check", drift.Check),
			zap.String("from", string(drift.From)),
			zap.String("to", string(drift.To)),
			zap.String("detail", drift.Detail))
	}

	if !w.notifier.ShouldNotify(true) {
		return
	}

	findings := make([]notify.Finding, 0, len(drifts))
	for _, drift := range drifts {
		findings = append(findings, notify.Finding{
			Probe:  drift.Probe,
			Check:  drift.Check,
			Status: string(drift.To),
			Detail: drift.Detail,
		})
	}

	payload := &notify.AlertPayload{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hostname:  report.Hostname,
		Status:    string(worstTransition(drifts)),
		Title:     fmt.Sprintf("Posture drift detected (%d changes)", len(drifts)),
		Summary:   output.Summary(report),
		Findings:  findings,
	}

	result := w.notifier.Send(ctx, payload)
	if len(result.Sent) > 0 {
		w.logger.Info("Drift notification sent",
			zap.Strings("providers", result.Sent))
	}
	for _, failure := range result.Failed {
		w.logger.Error("Drift notification failed",
			zap.String("provider", failure.Provider),
			zap.String("error", failure.Error))
	}
}
