package probes

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/system"
)

// NetworkProbe classifies every listening port against the allow-list
// and reports the established connection total. An unexpected listener
// is exposure worth a look, not a proven hole, so it warns.
type NetworkProbe struct{}

func (p *NetworkProbe) Name() string           { return "network" }
func (p *NetworkProbe) Timeout() time.Duration { return system.TimeoutMedium }

func (p *NetworkProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	sockets, err := insp.ListeningSockets(ctx)
	if err != nil {
		return []CheckResult{failErr("listening sockets", err)}
	}

	allowed := make(map[int]bool, len(cfg.ListenAllowlist))
	for _, port := range cfg.ListenAllowlist {
		allowed[port] = true
	}

	// Dedupe across protocols and address families; report ascending.
	byPort := make(map[int][]string)
	for _, s := range sockets {
		byPort[s.Port] = append(byPort[s.Port], fmt.Sprintf("%s %s", s.Protocol, s.Address))
	}
	ports := make([]int, 0, len(byPort))
	for port := range byPort {
		ports = append(ports, port)
	}
	sort.Ints(ports)

	results := make([]CheckResult, 0, len(ports)+1)
	for _, port := range ports {
		name := fmt.Sprintf("listening port %d", port)
		detail := byPort[port][0]
		if n := len(byPort[port]); n > 1 {
			detail = fmt.Sprintf("%s (+%d more)", detail, n-1)
		}
		if allowed[port] {
			results = append(results, pass(name, detail))
		} else {
			results = append(results, warn(name, detail+" not in allow-list"))
		}
	}

	count, err := insp.EstablishedCount(ctx)
	if err != nil {
		results = append(results, failErr("established connections", err))
		return results
	}
	results = append(results, pass("established connections", fmt.Sprintf("%d active", count)))

	return results
}
