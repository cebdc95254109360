package output

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/probes"
)

func sampleReport() *audit.Report {
	report := &audit.Report{
		ID:        "3f2c9a10-5a4e-4b7e-9d27-0c55c7a9a001",
		Hostname:  "edge-01",
		StartedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Duration:  1204 * time.Millisecond,
		Sections: []audit.Section{
			{Probe: "ssh", Results: []probes.CheckResult{
				{Name: "password authentication", Status: probes.StatusPass, Detail: "passwordauthentication no"},
				{Name: "root login", Status: probes.StatusFail, Detail: "permitrootlogin yes (want no)"},
			}},
			{Probe: "firewall", Results: []probes.CheckResult{
				{Name: "firewall active", Status: probes.StatusWarning, Detail: "ufw reports inactive"},
			}},
		},
		Recommendations: []string{
			"Tighten /etc/ssh/sshd_config: disable password and root login, require public keys, then reload sshd.",
		},
	}
	report.Summary = audit.Summary{Total: 3, Passed: 1, Warnings: 1, Failed: 1}
	return report
}

func TestText(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	got := Text(sampleReport())

	wantParts := []string{
		"POSTURE REPORT  -  edge-01",
		"Report:   3f2c9a10-5a4e-4b7e-9d27-0c55c7a9a001",
		"Started:  2026-03-14 09:26:53",
		"Duration: 1.204s",
		"SSH",
		"[PASS] password authentication: passwordauthentication no",
		"[FAIL] root login: permitrootlogin yes (want no)",
		"FIREWALL",
		"[WARN] firewall active: ufw reports inactive",
		"SUMMARY",
		"Checks:   3",
		"Passed:   1",
		"Warnings: 1",
		"Failed:   1",
		"Recommendations:",
		"• Tighten /etc/ssh/sshd_config",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("Text() missing %q", part)
		}
	}
}

func TestText_SectionOrderPreserved(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	got := Text(sampleReport())

	sshIdx := strings.Index(got, "\n  SSH\n")
	fwIdx := strings.Index(got, "\n  FIREWALL\n")
	if sshIdx < 0 || fwIdx < 0 {
		t.Fatalf("section headers missing:\n%s", got)
	}
	if sshIdx > fwIdx {
		t.Error("firewall section rendered before ssh")
	}
}

func TestText_NoRecommendations(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	report := sampleReport()
	report.Recommendations = nil

	got := Text(report)
	if strings.Contains(got, "Recommendations:") {
		t.Error("Recommendations header rendered for empty list")
	}
}

func TestStatusTag(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	tests := []struct {
		status probes.Status
		want   string
	}{
		{probes.StatusPass, "[PASS]"},
		{probes.StatusWarning, "[WARN]"},
		{probes.StatusFail, "[FAIL]"},
	}
	for _, tt := range tests {
		if got := statusTag(tt.status); got != tt.want {
			t.Errorf("statusTag(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	got := Summary(sampleReport())
	want := "edge-01: 3 checks, 1 passed, 1 warnings, 1 failed"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
