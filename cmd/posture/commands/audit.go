package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/notify"
	"github.com/girste/posture/internal/output"
	"github.com/girste/posture/internal/precheck"
	"github.com/girste/posture/internal/probes"
)

// RunAudit executes the audit command
func RunAudit() int {
	formatType := output.FormatText
	outputFile := ""
	configPath := ""
	failOnFindings := false
	noColor := false
	quiet := false

	for i := 2; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case strings.HasPrefix(arg, "--format="):
			formatType = strings.TrimPrefix(arg, "--format=")
		case arg == "--format" && i+1 < len(os.Args):
			formatType = os.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--output="):
			outputFile = strings.TrimPrefix(arg, "--output=")
		case arg == "--output" && i+1 < len(os.Args):
			outputFile = os.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--config" && i+1 < len(os.Args):
			configPath = os.Args[i+1]
			i++
		case arg == "--fail-on-findings":
			failOnFindings = true
		case arg == "--no-color":
			noColor = true
		case arg == "--quiet" || arg == "-q":
			quiet = true
		case arg == "--help" || arg == "-h":
			PrintAuditHelp()
			return 0
		}
	}

	switch formatType {
	case output.FormatText, output.FormatJSON, output.FormatSARIF, output.FormatSummary:
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", formatType)
		return 2
	}

	// Color only makes sense for the text report on a terminal.
	if noColor || formatType != output.FormatText || outputFile != "" ||
		!term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}
		return 2
	}

	ctx := context.Background()

	if err := precheck.Run(ctx); err != nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Cannot run audit: %v\n", err)
		}
		return 2
	}

	runner := audit.NewRunner(inspect.NewHost(cfg.LookbackDuration()), cfg)
	report := runner.Run(ctx)

	if cfg.Notifications.Enabled {
		notifier := notify.NewNotifier(&cfg.Notifications)
		if notifier.ShouldNotify(report.HasFindings()) {
			result := notifier.Send(ctx, auditAlert(report))
			if !quiet {
				if len(result.Sent) > 0 {
					fmt.Fprintf(os.Stderr, "Notifications sent to: %v\n", result.Sent)
				}
				for _, failure := range result.Failed {
					fmt.Fprintf(os.Stderr, "Notification to %s failed: %s\n",
						failure.Provider, failure.Error)
				}
			}
		}
	}

	var rendered string
	if outputFile != "" || !quiet {
		switch formatType {
		case output.FormatJSON:
			rendered, err = output.JSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
				return 2
			}
			rendered += "\n"
		case output.FormatSARIF:
			rendered, err = output.NewSARIF(report, Version).ToJSON()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
				return 2
			}
			rendered += "\n"
		case output.FormatSummary:
			rendered = output.Summary(report) + "\n"
		default:
			rendered = output.Text(report)
		}
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(rendered), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output file: %v\n", err)
			return 2
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Report written to: %s\n", outputFile)
		}
	} else if !quiet {
		fmt.Print(rendered)
	}

	return output.ExitCode(report, failOnFindings)
}

// auditAlert converts a finished report into the notification payload.
// Only non-pass checks are carried as findings.
func auditAlert(report *audit.Report) *notify.AlertPayload {
	var findings []notify.Finding
	for _, section := range report.Sections {
		for _, result := range section.Results {
			if result.Status == probes.StatusPass {
				continue
			}
			findings = append(findings, notify.Finding{
				Probe:  section.Probe,
				Check:  result.Name,
				Status: string(result.Status),
				Detail: result.Detail,
			})
		}
	}

	status := string(probes.StatusWarning)
	if report.HasFailures() {
		status = string(probes.StatusFail)
	}

	return &notify.AlertPayload{
		Timestamp: report.StartedAt.Format(time.RFC3339),
		Hostname:  report.Hostname,
		Status:    status,
		Title:     fmt.Sprintf("Posture audit: %d findings", len(findings)),
		Summary:   output.Summary(report),
		Findings:  findings,
	}
}

// PrintAuditHelp displays help for the audit command
func PrintAuditHelp() {
	help := `posture audit - Run the posture audit

USAGE:
    posture audit [OPTIONS]

OPTIONS:
    --format=FORMAT      Output format: text, json, sarif, summary (default: text)
    --output=FILE        Write the report to a file instead of stdout
    --config=PATH        Load configuration from an explicit path
    --fail-on-findings   Exit 1 when any check fails
    --no-color           Disable colored output
    --quiet, -q          Suppress output (exit code only)
    --help, -h           Show this help message

FORMATS:
    text      Human-readable report for terminals
    json      Machine-readable JSON for scripts
    sarif     SARIF 2.1.0 for code scanning uploads
    summary   One-line digest for monitoring

EXIT CODES:
    0    Audit completed (findings do not fail the run by default)
    1    A check failed and --fail-on-findings was set
    2    Preconditions or configuration prevented the audit

EXAMPLES:
    # Human-readable report
    posture audit

    # JSON for scripts
    posture audit --format=json

    # Code scanning upload
    posture audit --format=sarif --output=posture.sarif

    # CI gate: fail the job on failed checks
    posture audit --fail-on-findings

    # Cron: exit code only, notify via configured webhooks
    posture audit --quiet
`
	fmt.Print(help)
}
