package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/girste/posture/internal/system"
)

// RunVerify checks the audit prerequisites without probing anything.
// It mirrors the launch gate: exit 2 means the audit would refuse to run.
func RunVerify() int {
	fmt.Println("Verifying audit prerequisites...")

	ctx := context.Background()

	osInfo := system.GetOSInfo(ctx)
	fmt.Printf("  OS detected: %s (%s)\n", osInfo.System, osInfo.Distro)
	fmt.Printf("  Kernel: %s\n", osInfo.Kernel)

	tools := []string{"sshd", "ufw", "getent", "id", "stat", "ss", "systemctl", "journalctl"}
	fmt.Println("\nChecking commands:")
	for _, tool := range tools {
		if system.CommandExists(tool) {
			fmt.Printf("  [OK] %s\n", tool)
		} else {
			fmt.Printf("  [--] %s (not found)\n", tool)
		}
	}

	fmt.Println("\nChecking launch preconditions:")
	if os.Geteuid() == 0 {
		fmt.Println("  [!!] Running as root; run the audit as the admin user instead")
		return 2
	}
	fmt.Println("  [OK] Not running as root")

	if !system.HasPasswordlessSudo(ctx) {
		fmt.Println("  [!!] Passwordless sudo not configured")
		fmt.Println("\nGrant the audit user passwordless sudo to enable privileged reads")
		return 2
	}
	fmt.Println("  [OK] Passwordless sudo configured")

	fmt.Println("\nVerification complete!")
	return 0
}
