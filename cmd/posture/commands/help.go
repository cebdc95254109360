// Package commands implements the posture CLI subcommands.
package commands

import "fmt"

// Version is overridden at release time via -ldflags.
var Version = "1.0.0"

// PrintHelp displays the main help message
func PrintHelp() {
	help := `posture - Security posture auditor for hardened Ubuntu hosts

USAGE:
    posture [COMMAND]

COMMANDS:
    (none)      Run the audit (default)
    audit       Run the audit with explicit options
    watch       Re-audit on an interval and report drift
    serve       Start the MCP server (stdio)
    verify      Verify prerequisites and tooling
    version     Show version
    help        This help

AUDIT OPTIONS (posture audit):
    --format=FORMAT      Output format: text, json, sarif, summary
    --output=FILE        Write the report to a file
    --config=PATH        Load configuration from an explicit path
    --fail-on-findings   Exit 1 when any check fails
    --no-color           Disable colored output
    --quiet, -q          Suppress output (exit code only)

    Exit codes: 0=audit completed, 1=failures (with --fail-on-findings),
                2=preconditions or configuration failed

WATCH OPTIONS (posture watch):
    --interval=DURATION   Delay between audit cycles (default: 15m)
    --webhook=URL         Send drift notifications to this webhook

EXAMPLES:
    # Audit with the terminal report
    posture

    # JSON for scripts
    posture audit --format=json

    # SARIF for code scanning uploads
    posture audit --format=sarif --output=posture.sarif

    # CI gate: fail the job on failed checks
    posture audit --fail-on-findings --quiet

    # Continuous drift watch every five minutes
    posture watch --interval=5m

    # Expose the auditor to an MCP client
    posture serve

CONFIGURATION:
    Config file locations (in order of priority):
    - POSTURE_CONFIG environment variable
    - posture.yaml (current directory)
    - ~/.config/posture/posture.yaml
    - /etc/posture/posture.yaml

For more information, visit: https://github.com/girste/posture
`
	fmt.Print(help)
}

// PrintVersion displays version information
func PrintVersion() {
	fmt.Printf("posture version %s\n", Version)
}
