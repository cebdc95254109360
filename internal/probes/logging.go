package probes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/system"
)

// LoggingProbe checks that journald is collecting and summarizes recent
// SSH authentication history. Failed attempts are background noise on
// any reachable host, so they warn with the most recent lines attached
// rather than fail.
type LoggingProbe struct{}

func (p *LoggingProbe) Name() string           { return "logging" }
func (p *LoggingProbe) Timeout() time.Duration { return system.TimeoutLong }

func (p *LoggingProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	results := make([]CheckResult, 0, 3)

	if insp.ServiceActive(ctx, "systemd-journald") {
		results = append(results, pass("journald active", "systemd-journald running"))
	} else {
		results = append(results, fail("journald active", "systemd-journald not active"))
	}

	window := cfg.JournalLookback
	if _, err := time.ParseDuration(window); err != nil {
		window = cfg.LookbackDuration().String()
	}

	failed, err := insp.QueryLog(ctx, "Failed password")
	if err != nil {
		results = append(results, failErr("failed authentication attempts", err))
	} else if len(failed) == 0 {
		results = append(results, pass("failed authentication attempts",
			fmt.Sprintf("none in last %s", window)))
	} else {
		recent := failed
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		results = append(results, warn("failed authentication attempts",
			fmt.Sprintf("%d in last %s; most recent: %s",
				len(failed), window, strings.Join(recent, " | "))))
	}

	accepted, err := insp.QueryLog(ctx, "Accepted")
	if err != nil {
		results = append(results, failErr("accepted sessions", err))
	} else {
		results = append(results, pass("accepted sessions",
			fmt.Sprintf("%d in last %s", len(accepted), window)))
	}

	return results
}
