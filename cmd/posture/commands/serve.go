package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/girste/posture/internal/mcp"
)

// RunServe starts the MCP server on stdio.
func RunServe() {
	for i := 2; i < len(os.Args); i++ {
		if os.Args[i] == "--help" || os.Args[i] == "-h" {
			PrintServeHelp()
			return
		}
	}

	server, err := mcp.NewServer(Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create MCP server: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve()
	}()

	select {
	case sig := <-sigChan:
		fmt.Fprintf(os.Stderr, "\nReceived %s signal, shutting down...\n", sig)
		os.Exit(0)

	case err := <-errChan:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	}
}

// PrintServeHelp displays help for the serve command
func PrintServeHelp() {
	help := `posture serve - Start the MCP server

USAGE:
    posture serve [OPTIONS]

DESCRIPTION:
    Serves the audit tools over the Model Context Protocol on stdio.
    Clients can run full audits (run_audit) or single probes
    (check_posture). Every tool call re-checks the launch preconditions,
    so a lapsed sudo grant turns into a tool error, not a dead server.

OPTIONS:
    --help, -h    Show this help message

TOOLS:
    run_audit       Run the full audit; returns the report (json or text)
    check_posture   Run a single probe; returns its check results

EXAMPLE:
    # MCP client configuration
    { "command": "posture", "args": ["serve"] }
`
	fmt.Print(help)
}
