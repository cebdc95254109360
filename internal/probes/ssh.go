package probes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/system"
)

// SSHProbe checks the effective sshd configuration against the hardened
// baseline. Authentication directives are hard requirements; the rate
// limiting knobs only warn.
type SSHProbe struct{}

func (p *SSHProbe) Name() string           { return "ssh" }
func (p *SSHProbe) Timeout() time.Duration { return system.TimeoutShort }

func (p *SSHProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	sshCfg, err := insp.SSHConfig(ctx)
	if err != nil {
		return []CheckResult{failErr("sshd configuration", err)}
	}

	results := make([]CheckResult, 0, 6)

	results = append(results, requireValue(sshCfg, "passwordauthentication", "no",
		"password authentication"))
	results = append(results, requireValue(sshCfg, "pubkeyauthentication", "yes",
		"public key authentication"))
	results = append(results, requireValue(sshCfg, "permitrootlogin", "no",
		"root login"))
	results = append(results, requireValue(sshCfg, "protocol", "2",
		"protocol version"))

	results = append(results, limitValue(sshCfg, "maxauthtries", 3,
		"max auth tries"))
	results = append(results, limitValue(sshCfg, "logingracetime", 60,
		"login grace time"))

	return results
}

// requireValue checks an exact directive value. An absent directive fails:
// the hardened baseline sets every one of these explicitly.
func requireValue(sshCfg map[string]string, key, want, name string) CheckResult {
	got, ok := sshCfg[key]
	if !ok {
		return fail(name, fmt.Sprintf("%s not set (want %s)", key, want))
	}
	if got != want {
		return fail(name, fmt.Sprintf("%s %s (want %s)", key, got, want))
	}
	return pass(name, fmt.Sprintf("%s %s", key, got))
}

// limitValue checks a numeric directive against a ceiling. These are
// tuning knobs, so anything off never rates worse than Warning.
func limitValue(sshCfg map[string]string, key string, max int, name string) CheckResult {
	got, ok := sshCfg[key]
	if !ok {
		return warn(name, fmt.Sprintf("%s not set (recommended <= %d)", key, max))
	}
	value, err := strconv.Atoi(got)
	if err != nil {
		return warn(name, fmt.Sprintf("%s %s is not numeric", key, got))
	}
	if value > max {
		return warn(name, fmt.Sprintf("%s %d (recommended <= %d)", key, value, max))
	}
	return pass(name, fmt.Sprintf("%s %d", key, value))
}
