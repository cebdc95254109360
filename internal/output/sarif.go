package output

import (
	"encoding/json"
	"fmt"

	"github.com/girste/posture/internal/audit"
	"github.com/girste/posture/internal/probes"
)

// SARIF 2.1.0 types, trimmed to the fields this converter fills.
// Spec: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

type SARIFReport struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

type SARIFRule struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription SARIFText `json:"shortDescription"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
	Kind      string          `json:"kind,omitempty"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFText struct {
	Text string `json:"text"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation  `json:"physicalLocation,omitempty"`
	LogicalLocations []SARIFLogicalLocation `json:"logicalLocations,omitempty"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

type SARIFLogicalLocation struct {
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

// NewSARIF converts a report's findings to a SARIF 2.1.0 run for
// code-scanning ingestion. Passing checks are omitted: a SARIF result
// is an alert. Codes are generated for every check so a finding keeps
// the same rule ID whether or not earlier checks in its probe passed.
func NewSARIF(report *audit.Report, version string) *SARIFReport {
	gen := newCodeGenerator()
	var rules []SARIFRule
	var results []SARIFResult

	for _, section := range report.Sections {
		for _, check := range section.Results {
			code := gen.next(section.Probe)
			if check.Status == probes.StatusPass {
				continue
			}

			rules = append(rules, SARIFRule{
				ID:               code,
				Name:             check.Name,
				ShortDescription: SARIFText{Text: check.Name},
			})

			result := SARIFResult{
				RuleID:  code,
				Level:   sarifLevel(check.Status),
				Message: SARIFMessage{Text: check.Detail},
				Kind:    "fail",
			}
			if location := probeLocation(section.Probe, report.Hostname); location != nil {
				result.Locations = []SARIFLocation{*location}
			}
			results = append(results, result)
		}
	}

	return &SARIFReport{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "posture",
					Version:        version,
					InformationURI: "https://github.com/girste/posture",
					Rules:          rules,
				},
			},
			Results: results,
		}},
	}
}

func sarifLevel(status probes.Status) string {
	switch status {
	case probes.StatusFail:
		return "error"
	case probes.StatusWarning:
		return "warning"
	default:
		return "note"
	}
}

// probeLocation maps a probe to the configuration surface it audits.
func probeLocation(probe, hostname string) *SARIFLocation {
	var uri string
	var logicalName string

	switch probe {
	case "ssh":
		uri = "file:///etc/ssh/sshd_config"
		logicalName = "SSH Configuration"
	case "firewall":
		uri = "file:///etc/ufw/ufw.conf"
		logicalName = "Firewall Configuration"
	case "user":
		uri = "file:///etc/sudoers.d/"
		logicalName = "Admin Account Configuration"
	case "logging":
		uri = "file:///etc/systemd/journald.conf"
		logicalName = "Journal Configuration"
	default:
		uri = fmt.Sprintf("system://%s", hostname)
		logicalName = fmt.Sprintf("%s subsystem", probe)
	}

	return &SARIFLocation{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
		},
		LogicalLocations: []SARIFLogicalLocation{
			{Name: logicalName, Kind: "resource"},
		},
	}
}

// ToJSON outputs the SARIF report as indented JSON.
func (s *SARIFReport) ToJSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
