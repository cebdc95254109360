package audit

import "github.com/girste/posture/internal/probes"

// allClearLine closes an all-pass report.
const allClearLine = "Posture matches the hardened baseline; no action required."

// Recommendations derives the closing action list from the observed
// results: one line per probe that reported anything, keyed by its worst
// status. An all-pass report gets a single confirmation line.
func Recommendations(report *Report) []string {
	var recs []string
	for _, section := range report.Sections {
		worst := worstStatus(section.Results)
		if line := recommendFor(section.Probe, worst); line != "" {
			recs = append(recs, line)
		}
	}

	if len(recs) == 0 {
		return []string{allClearLine}
	}
	return recs
}

func worstStatus(results []probes.CheckResult) probes.Status {
	worst := probes.StatusPass
	for _, result := range results {
		switch result.Status {
		case probes.StatusFail:
			return probes.StatusFail
		case probes.StatusWarning:
			worst = probes.StatusWarning
		}
	}
	return worst
}

// recommendFor maps a probe and its worst status to one actionable line.
// Pass yields nothing.
func recommendFor(probe string, worst probes.Status) string {
	if worst == probes.StatusPass {
		return ""
	}

	failed := worst == probes.StatusFail

	switch probe {
	case "ssh":
		if failed {
			return "Tighten /etc/ssh/sshd_config: disable password and root login, require public keys, then reload sshd."
		}
		return "Review sshd rate limits (MaxAuthTries, LoginGraceTime) in /etc/ssh/sshd_config."
	case "firewall":
		if failed {
			return "Enable ufw with default deny incoming and allow outgoing."
		}
		return "Reconcile ufw allow rules with the expected port set."
	case "user":
		if failed {
			return "Provision the admin account: sudo group membership and its sudoers drop-in."
		}
		return "Set the admin login shell to the expected shell."
	case "ssh-key":
		if failed {
			return "Fix key material permissions: chmod 700 ~/.ssh and chmod 600 authorized_keys."
		}
		return "Provision SSH key material for the admin account."
	case "monitoring":
		if failed {
			return "Install the missing monitoring tools."
		}
		return "Start the monitoring services and create their working directories."
	case "network":
		if failed {
			return "Restore socket inspection tooling so listeners can be audited."
		}
		return "Close or allow-list the unexpected listening ports."
	case "logging":
		if failed {
			return "Ensure systemd-journald is running so authentication history is captured."
		}
		return "Review the recent failed SSH authentication attempts."
	default:
		if failed {
			return "Investigate the failed " + probe + " checks."
		}
		return "Review the " + probe + " warnings."
	}
}
