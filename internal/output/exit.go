package output

import "github.com/girste/posture/internal/audit"

// ExitCode maps a finished report to a process exit status. Findings
// fail the run only when the caller asks for it; precondition and
// configuration errors exit 2 before a report ever exists.
func ExitCode(report *audit.Report, failOnFindings bool) int {
	if failOnFindings && report.Summary.Failed > 0 {
		return 1
	}
	return 0
}
