// Package probes holds the posture checks. Each probe inspects one
// subsystem through an Inspector snapshot and reports a fixed set of
// check results; a probe never mutates the host and never aborts the
// sequence.
package probes

import (
	"context"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
)

// Status classifies a single check outcome.
type Status string

const (
	// StatusPass means the host matches the expected posture.
	StatusPass Status = "pass"
	// StatusWarning flags tuning drift that does not weaken access control.
	StatusWarning Status = "warning"
	// StatusFail flags broken access control, or a check that could not
	// be inspected at all.
	StatusFail Status = "fail"
)

// CheckResult is one named verdict.
type CheckResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Probe inspects one subsystem.
type Probe interface {
	Name() string
	Timeout() time.Duration
	Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult
}

// Order returns every probe in report order. The sequence is fixed:
// hardening checks first, monitoring and history last.
func Order() []Probe {
	return []Probe{
		&SSHProbe{},
		&FirewallProbe{},
		&UserProbe{},
		&SSHKeyProbe{},
		&MonitoringProbe{},
		&NetworkProbe{},
		&LoggingProbe{},
	}
}

// Lookup returns the probe with the given name.
func Lookup(name string) (Probe, bool) {
	for _, p := range Order() {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns probe names in report order.
func Names() []string {
	order := Order()
	names := make([]string, len(order))
	for i, p := range order {
		names[i] = p.Name()
	}
	return names
}

func pass(name, detail string) CheckResult {
	return CheckResult{Name: name, Status: StatusPass, Detail: detail}
}

func warn(name, detail string) CheckResult {
	return CheckResult{Name: name, Status: StatusWarning, Detail: detail}
}

func fail(name, detail string) CheckResult {
	return CheckResult{Name: name, Status: StatusFail, Detail: detail}
}

// failErr reports a subsystem whose inspection could not run. An
// unreachable inspection counts as Fail, same as a bad finding, so a
// hardening gap can not hide behind a broken tool.
func failErr(name string, err error) CheckResult {
	return CheckResult{Name: name, Status: StatusFail, Detail: "inspection failed: " + err.Error()}
}
