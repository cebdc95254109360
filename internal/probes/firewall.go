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

// FirewallProbe checks ufw activation, default policies, and the allow
// rule set. Rule checks run even when the firewall is down so the report
// shows everything wrong at once.
type FirewallProbe struct{}

func (p *FirewallProbe) Name() string           { return "firewall" }
func (p *FirewallProbe) Timeout() time.Duration { return system.TimeoutMedium }

func (p *FirewallProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	state, err := insp.Firewall(ctx)
	if err != nil {
		return []CheckResult{failErr("ufw state", err)}
	}

	results := make([]CheckResult, 0, 4)

	if state.Active {
		results = append(results, pass("firewall active", "ufw reports active"))
	} else {
		results = append(results, fail("firewall active", "ufw reports inactive"))
	}

	results = append(results, policyCheck("default incoming policy", state.DefaultIncoming, "deny"))
	results = append(results, policyCheck("default outgoing policy", state.DefaultOutgoing, "allow"))
	results = append(results, allowRules(state.AllowedPorts, cfg.ExpectedPorts))

	return results
}

func policyCheck(name, got, want string) CheckResult {
	if got == want {
		return pass(name, got)
	}
	if got == "" {
		got = "unknown"
	}
	return fail(name, fmt.Sprintf("%s (want %s)", got, want))
}

// allowRules compares the active allow rules with the expected port set.
// Pass requires an exact match: every expected port ruled, no rules
// beyond them.
func allowRules(allowed, expected []int) CheckResult {
	const name = "allowed port rules"

	expectedSet := make(map[int]bool, len(expected))
	for _, port := range expected {
		expectedSet[port] = true
	}

	matched := 0
	var extras []int
	for _, port := range allowed {
		if expectedSet[port] {
			matched++
		} else {
			extras = append(extras, port)
		}
	}

	if matched == len(expected) && len(extras) == 0 {
		return pass(name, fmt.Sprintf("allow rules match expected set %s", portList(expected)))
	}

	var missing []int
	allowedSet := make(map[int]bool, len(allowed))
	for _, port := range allowed {
		allowedSet[port] = true
	}
	for _, port := range expected {
		if !allowedSet[port] {
			missing = append(missing, port)
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+portList(missing))
	}
	if len(extras) > 0 {
		parts = append(parts, "unexpected "+portList(extras))
	}
	return warn(name, strings.Join(parts, ", "))
}

func portList(ports []int) string {
	parts := make([]string, len(ports))
	for i, port := range ports {
		parts[i] = fmt.Sprintf("%d", port)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
