package output

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSARIF(t *testing.T) {
	sarif := NewSARIF(sampleReport(), "1.2.0")

	if sarif.Version != "2.1.0" {
		t.Errorf("Version = %q, want 2.1.0", sarif.Version)
	}
	if !strings.Contains(sarif.Schema, "sarif-2.1.0") {
		t.Errorf("Schema = %q, want sarif-2.1.0 schema", sarif.Schema)
	}
	if len(sarif.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(sarif.Runs))
	}

	run := sarif.Runs[0]
	if run.Tool.Driver.Name != "posture" {
		t.Errorf("driver name = %q, want posture", run.Tool.Driver.Name)
	}
	if run.Tool.Driver.Version != "1.2.0" {
		t.Errorf("driver version = %q, want 1.2.0", run.Tool.Driver.Version)
	}

	// Only findings become results; the passing check is skipped
	if len(run.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(run.Results))
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Errorf("got %d rules, want 2", len(run.Tool.Driver.Rules))
	}

	// The pass check consumed SSH-001, so the failing root login check
	// keeps SSH-002 regardless of what passed before it
	rootLogin := run.Results[0]
	if rootLogin.RuleID != "SSH-002" {
		t.Errorf("RuleID = %q, want SSH-002", rootLogin.RuleID)
	}
	if rootLogin.Level != "error" {
		t.Errorf("Level = %q, want error", rootLogin.Level)
	}
	if !strings.Contains(rootLogin.Message.Text, "permitrootlogin yes") {
		t.Errorf("Message = %q, want the check detail", rootLogin.Message.Text)
	}

	firewall := run.Results[1]
	if firewall.RuleID != "FW-001" {
		t.Errorf("RuleID = %q, want FW-001", firewall.RuleID)
	}
	if firewall.Level != "warning" {
		t.Errorf("Level = %q, want warning", firewall.Level)
	}
}

func TestNewSARIF_Locations(t *testing.T) {
	sarif := NewSARIF(sampleReport(), "dev")
	results := sarif.Runs[0].Results

	sshLoc := results[0].Locations
	if len(sshLoc) != 1 {
		t.Fatalf("got %d locations, want 1", len(sshLoc))
	}
	if uri := sshLoc[0].PhysicalLocation.ArtifactLocation.URI; uri != "file:///etc/ssh/sshd_config" {
		t.Errorf("ssh URI = %q, want sshd_config", uri)
	}

	fwLoc := results[1].Locations
	if uri := fwLoc[0].PhysicalLocation.ArtifactLocation.URI; uri != "file:///etc/ufw/ufw.conf" {
		t.Errorf("firewall URI = %q, want ufw.conf", uri)
	}
}

func TestNewSARIF_CleanReport(t *testing.T) {
	report := sampleReport()
	for i := range report.Sections {
		for j := range report.Sections[i].Results {
			report.Sections[i].Results[j].Status = "pass"
		}
	}

	sarif := NewSARIF(report, "dev")
	if got := len(sarif.Runs[0].Results); got != 0 {
		t.Errorf("got %d results on a clean report, want 0", got)
	}
}

func TestSARIFToJSON(t *testing.T) {
	out, err := NewSARIF(sampleReport(), "dev").ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["$schema"]; !ok {
		t.Error("SARIF output missing $schema")
	}
	if _, ok := decoded["runs"]; !ok {
		t.Error("SARIF output missing runs")
	}
}

func TestProbeLocation_Default(t *testing.T) {
	loc := probeLocation("network", "edge-01")
	if uri := loc.PhysicalLocation.ArtifactLocation.URI; uri != "system://edge-01" {
		t.Errorf("URI = %q, want system://edge-01", uri)
	}
	if name := loc.LogicalLocations[0].Name; name != "network subsystem" {
		t.Errorf("logical name = %q, want network subsystem", name)
	}
}
