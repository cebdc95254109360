// Package output renders finished audit reports: terminal text, JSON,
// and SARIF for code-scanning pipelines.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/probes"
)

// Output formats accepted by the audit command.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatSARIF   = "sarif"
	FormatSummary = "summary"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

var (
	passTag = color.New(color.FgGreen).SprintFunc()
	warnTag = color.New(color.FgYellow).SprintFunc()
	failTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

func statusTag(status probes.Status) string {
	switch status {
	case probes.StatusPass:
		return passTag("[PASS]")
	case probes.StatusWarning:
		return warnTag("[WARN]")
	default:
		return failTag("[FAIL]")
	}
}

// Text renders the report for a terminal. Color is controlled globally
// through color.NoColor; callers decide based on the output device.
func Text(report *audit.Report) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(heavyRule + "\n")
	sb.WriteString(fmt.Sprintf("  POSTURE REPORT  -  %s\n", report.Hostname))
	sb.WriteString(heavyRule + "\n\n")

	sb.WriteString(fmt.Sprintf("  Report:   %s\n", report.ID))
	sb.WriteString(fmt.Sprintf("  Started:  %s\n", report.StartedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("  Duration: %s\n\n", report.Duration.Round(time.Millisecond)))

	for _, section := range report.Sections {
		sb.WriteString(lightRule + "\n")
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(section.Probe)))
		sb.WriteString(lightRule + "\n")
		for _, result := range section.Results {
			if result.Detail == "" {
				sb.WriteString(fmt.Sprintf("  %s %s\n", statusTag(result.Status), result.Name))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n", statusTag(result.Status), result.Name, result.Detail))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(lightRule + "\n")
	sb.WriteString("  SUMMARY\n")
	sb.WriteString(lightRule + "\n")
	sb.WriteString(fmt.Sprintf("  Checks:   %d\n", report.Summary.Total))
	sb.WriteString(fmt.Sprintf("  Passed:   %d\n", report.Summary.Passed))
	sb.WriteString(fmt.Sprintf("  Warnings: %d\n", report.Summary.Warnings))
	sb.WriteString(fmt.Sprintf("  Failed:   %d\n\n", report.Summary.Failed))

	if len(report.Recommendations) > 0 {
		sb.WriteString("  Recommendations:\n")
		for _, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(heavyRule + "\n")

	return sb.String()
}

// Summary is a one-line digest for logs and notification titles.
func Summary(report *audit.Report) string {
	return fmt.Sprintf("%s: %d checks, %d passed, %d warnings, %d failed",
		report.Hostname, report.Summary.Total, report.Summary.Passed,
		report.Summary.Warnings, report.Summary.Failed)
}
