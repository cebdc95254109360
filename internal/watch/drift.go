package watch

import (
	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/probes"
)

// Drift is a check whose status changed between two consecutive
// reports. From is empty for a check that appeared, To for one that
// disappeared.
type Drift struct {
	Probe  string        `json:"probe"`
	Check  string        `json:"check"`
	From   probes.Status `json:"from,omitempty"`
	To     probes.Status `json:"to,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// Diff compares two reports check by check. A nil previous report
// yields no drifts; the first cycle only establishes the reference.
// Changed and appeared checks come out in current section order,
// disappeared ones after, in previous section order.
func Diff(prev, curr *audit.Report) []Drift {
	if prev == nil || curr == nil {
		return nil
	}

	before := make(map[string]probes.CheckResult)
	for _, section := range prev.Sections {
		for _, result := range section.Results {
			before[section.Probe+"/"+result.Name] = result
		}
	}

	seen := make(map[string]bool)
	var drifts []Drift

	for _, section := range curr.Sections {
		for _, result := range section.Results {
			key := section.Probe + "/" + result.Name
			seen[key] = true

			old, ok := before[key]
			if !ok {
				drifts = append(drifts, Drift{
					Probe:  section.Probe,
					Check:  result.Name,
					To:     result.Status,
					Detail: result.Detail,
				})
				continue
			}
			if old.Status != result.Status {
				drifts = append(drifts, Drift{
					Probe:  section.Probe,
					Check:  result.Name,
					From:   old.Status,
					To:     result.Status,
					Detail: result.Detail,
				})
			}
		}
	}

	for _, section := range prev.Sections {
		for _, result := range section.Results {
			key := section.Probe + "/" + result.Name
			if !seen[key] {
				drifts = append(drifts, Drift{
					Probe:  section.Probe,
					Check:  result.Name,
					From:   result.Status,
					Detail: result.Detail,
				})
			}
		}
	}

	return drifts
}

var statusRank = map[probes.Status]int{
	probes.StatusPass:    0,
	probes.StatusWarning: 1,
	probes.StatusFail:    2,
}

// worstTransition is the most severe landing status across the drifts.
// Drifts that only removed checks report as Warning.
func worstTransition(drifts []Drift) probes.Status {
	worst := probes.Status("")
	for _, drift := range drifts {
		if drift.To == "" {
			continue
		}
		if worst == "" || statusRank[drift.To] > statusRank[worst] {
			worst = drift.To
		}
	}
	if worst == "" {
		return probes.StatusWarning
	}
	return worst
}
