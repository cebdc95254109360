package system

import (
	"context"
	"os"
	"runtime"
	"strings"
)

// OSInfo contains information about the operating system
type OSInfo struct {
	System   string `json:"system"`
	Distro   string `json:"distro"`
	Kernel   string `json:"kernel"`
	Hostname string `json:"hostname"`
}

// GetOSInfo returns detailed OS information
func GetOSInfo(ctx context.Context) *OSInfo {
	info := &OSInfo{
		System: runtime.GOOS,
	}

	if result, _ := RunCommand(ctx, TimeoutShort, "uname", "-r"); result != nil && result.Success {
		info.Kernel = strings.TrimSpace(result.Stdout)
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	info.Distro = GetDistro(ctx)

	return info
}

// GetDistro detects the Linux distribution
func GetDistro(ctx context.Context) string {
	// Try /etc/os-release
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "ID=") {
				distro := strings.TrimPrefix(line, "ID=")
				return strings.ToLower(strings.Trim(distro, "\""))
			}
		}
	}

	// Try lsb_release
	if result, _ := RunCommand(ctx, TimeoutShort, "lsb_release", "-si"); result != nil && result.Success {
		return strings.ToLower(strings.TrimSpace(result.Stdout))
	}

	if _, err := os.Stat("/etc/debian_version"); err == nil {
		return "debian"
	}

	return "unknown"
}
