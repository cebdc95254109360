package probes

import (
	"context"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/system"
)

// MonitoringProbe checks the observability tooling the host is supposed
// to carry: the tools themselves, their services, and the directories
// their scripts write to. Only missing binaries fail; a stopped service
// or missing directory is recoverable and warns.
type MonitoringProbe struct{}

func (p *MonitoringProbe) Name() string           { return "monitoring" }
func (p *MonitoringProbe) Timeout() time.Duration { return system.TimeoutMedium }

func (p *MonitoringProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	results := make([]CheckResult, 0, len(cfg.MonitorTools)+len(cfg.MonitorServices)+len(cfg.MonitorDirs))

	for _, tool := range cfg.MonitorTools {
		if insp.BinaryPresent(tool) {
			results = append(results, pass(tool+" installed", "found on PATH"))
		} else {
			results = append(results, fail(tool+" installed", "not found on PATH"))
		}
	}

	for _, service := range cfg.MonitorServices {
		if insp.ServiceActive(ctx, service) {
			results = append(results, pass(service+" service", "active"))
		} else {
			results = append(results, warn(service+" service", "not active"))
		}
	}

	for _, dir := range cfg.MonitorDirs {
		results = append(results, p.dirCheck(ctx, insp, dir))
	}

	return results
}

func (p *MonitoringProbe) dirCheck(ctx context.Context, insp inspect.Inspector, dir string) CheckResult {
	name := "directory " + dir

	meta, err := insp.FileMeta(ctx, dir)
	switch {
	case err != nil:
		return failErr(name, err)
	case !meta.Exists:
		return warn(name, "missing")
	case !meta.IsDir:
		return warn(name, "exists but is not a directory")
	default:
		return pass(name, "present")
	}
}
