package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/precheck"
	"github.com/girste/posture/internal/watch"
)

// RunWatch runs the continuous re-audit loop in the foreground.
func RunWatch() int {
	interval := ""
	configPath := ""
	webhookURL := ""

	for i := 2; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case strings.HasPrefix(arg, "--interval="):
			interval = strings.TrimPrefix(arg, "--interval=")
		case arg == "--interval" && i+1 < len(os.Args):
			interval = os.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--config" && i+1 < len(os.Args):
			configPath = os.Args[i+1]
			i++
		case strings.HasPrefix(arg, "--webhook="):
			webhookURL = strings.TrimPrefix(arg, "--webhook=")
		case arg == "--webhook" && i+1 < len(os.Args):
			webhookURL = os.Args[i+1]
			i++
		case arg == "--help" || arg == "-h":
			PrintWatchHelp()
			return 0
		}
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
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 2
	}

	if interval != "" {
		if _, perr := time.ParseDuration(interval); perr != nil {
			fmt.Fprintf(os.Stderr, "Invalid interval: %s\n", interval)
			return 2
		}
		cfg.Watch.Interval = interval
	}
	if webhookURL != "" {
		cfg.Notifications.Enabled = true
		cfg.Notifications.Webhook.Enabled = true
		cfg.Notifications.Webhook.URL = webhookURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := precheck.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot start watch: %v\n", err)
		return 2
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived %s signal, stopping watch...\n", sig)
		cancel()
	}()

	watcher := watch.NewWatcher(inspect.NewHost(cfg.LookbackDuration()), cfg)
	watcher.Run(ctx)
	return 0
}

// PrintWatchHelp displays help for the watch command
func PrintWatchHelp() {
	help := `posture watch - Re-audit on an interval and report drift

USAGE:
    posture watch [OPTIONS]

DESCRIPTION:
    Runs an audit immediately, then again on every interval. Checks whose
    status changed since the previous cycle are logged and, when
    notifications are configured, pushed to Slack or a webhook. The first
    cycle only establishes the reference; it never notifies.

OPTIONS:
    --interval=DURATION   Delay between audit cycles (default: 15m)
    --config=PATH         Load configuration from an explicit path
    --webhook=URL         Send drift notifications to this webhook
    --help, -h            Show this help message

EXAMPLES:
    # Watch with the configured interval
    posture watch

    # Five-minute cycle with drift alerts to a webhook
    posture watch --interval=5m --webhook=https://alerts.example.com/hook
`
	fmt.Print(help)
}
