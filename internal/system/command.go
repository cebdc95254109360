// Package system runs host commands with timeouts and sudo fallback.
package system

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/girste/posture/internal/errors"
	"github.com/girste/posture/internal/log"
)

// CommandResult represents the result of a command execution
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Success  bool
	TimedOut bool
}

const (
	TimeoutShort    = 5 * time.Second
	TimeoutMedium   = 10 * time.Second
	TimeoutLong     = 30 * time.Second
	TimeoutVeryLong = 120 * time.Second
)

// RunCommand executes a command with timeout
func RunCommand(ctx context.Context, timeout time.Duration, cmdParts ...string) (*CommandResult, error) {
	if len(cmdParts) == 0 {
		return nil, errors.New("no command specified")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cmdParts[0], cmdParts[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Success:  err == nil,
		TimedOut: ctx.Err() == context.DeadlineExceeded,
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	} else if err == nil {
		result.ExitCode = 0
	}

	logCommand(cmdParts, result, time.Since(start))

	return result, nil
}

// RunCommandSudo tries without sudo first, falls back to sudo if permission denied
func RunCommandSudo(ctx context.Context, timeout time.Duration, cmdParts ...string) (*CommandResult, error) {
	// Try without sudo first
	result, err := RunCommand(ctx, timeout, cmdParts...)
	if err != nil {
		return result, err
	}

	// Check if permission denied
	stderrLower := strings.ToLower(result.Stderr)
	needsSudo := strings.Contains(stderrLower, "permission denied") ||
		strings.Contains(stderrLower, "you must be root") ||
		strings.Contains(stderrLower, "you need to be root") ||
		strings.Contains(stderrLower, "operation not permitted")

	// Special case: commands in /sbin or /usr/sbin often need sudo
	if len(cmdParts) > 0 {
		cmdPath := cmdParts[0]
		if strings.HasPrefix(cmdPath, "/sbin/") || strings.HasPrefix(cmdPath, "/usr/sbin/") {
			needsSudo = true
		}
	}

	if !needsSudo && result.Success {
		return result, nil
	}

	// Retry with sudo -n (no password prompt)
	sudoCmd := append([]string{"sudo", "-n"}, cmdParts...)
	return RunCommand(ctx, timeout, sudoCmd...)
}

// HasPasswordlessSudo reports whether sudo works without a password prompt.
// sudo -n fails immediately instead of prompting when a password would be
// required.
func HasPasswordlessSudo(ctx context.Context) bool {
	result, err := RunCommand(ctx, TimeoutShort, "sudo", "-n", "true")
	if err != nil || result == nil {
		return false
	}
	return result.Success
}

// CommandExists checks if a command is available
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// IsServiceActive checks if a systemd service is active
func IsServiceActive(ctx context.Context, service string) bool {
	result, err := RunCommand(ctx, TimeoutShort, "systemctl", "is-active", service)
	if err != nil || result == nil {
		return false
	}
	return result.Success && strings.TrimSpace(result.Stdout) == "active"
}

// logCommand records an execution for the debug audit trail.
func logCommand(cmdParts []string, result *CommandResult, duration time.Duration) {
	cmdStr := strings.Join(cmdParts, " ")

	switch {
	case result.TimedOut:
		log.Warnf("Command timed out: command=%s duration=%s", cmdStr, duration.String())
	case !result.Success:
		log.Debugf("Command returned non-zero exit code: command=%s exitCode=%d stderr=%s",
			cmdStr, result.ExitCode, truncate(result.Stderr, 200))
	default:
		log.Debugf("Command executed: command=%s duration=%s", cmdStr, duration.String())
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
