package inspect

import (
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/girste/posture/internal/errors"
)

var (
	incomingRegex = regexp.MustCompile(`Default: (\w+) \(incoming\)`)
	outgoingRegex = regexp.MustCompile(`(\w+) \(outgoing\)`)
	allowRegex    = regexp.MustCompile(`(\d+)(?:/tcp|/udp)?\s+ALLOW`)
)

// parseSSHConfig parses `sshd -T` output. Keywords arrive already
// lowercased; multi-valued keywords keep their whole value string.
func parseSSHConfig(out string) map[string]string {
	cfg := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, " ")
		if !found {
			cfg[strings.ToLower(key)] = ""
			continue
		}
		cfg[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	return cfg
}

// parseUFWStatus parses `ufw status verbose` output.
func parseUFWStatus(out string) *FirewallState {
	state := &FirewallState{
		Active: strings.Contains(strings.ToLower(out), "status: active"),
	}

	if match := incomingRegex.FindStringSubmatch(out); len(match) > 1 {
		state.DefaultIncoming = strings.ToLower(match[1])
	}
	if match := outgoingRegex.FindStringSubmatch(out); len(match) > 1 {
		state.DefaultOutgoing = strings.ToLower(match[1])
	}

	// Rules appear once per protocol and again for v6; dedupe by port.
	seen := make(map[int]bool)
	for _, match := range allowRegex.FindAllStringSubmatch(out, -1) {
		if len(match) > 1 {
			if port, err := strconv.Atoi(match[1]); err == nil && !seen[port] {
				seen[port] = true
				state.AllowedPorts = append(state.AllowedPorts, port)
			}
		}
	}
	sort.Ints(state.AllowedPorts)

	return state
}

// parsePasswdRecord parses one getent passwd line.
func parsePasswdRecord(line string) (*UserInfo, error) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < 7 {
		return nil, errors.Wrap(errors.ErrParseFailure, "malformed passwd record %q", line)
	}

	uid, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, errors.Wrap(errors.ErrParseFailure, "bad uid in passwd record %q", line)
	}
	gid, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, errors.Wrap(errors.ErrParseFailure, "bad gid in passwd record %q", line)
	}

	return &UserInfo{
		Name:  parts[0],
		UID:   uid,
		GID:   gid,
		Home:  parts[5],
		Shell: parts[6],
	}, nil
}

// parseStatMeta parses `stat -c '%F %a'` output, e.g. "directory 700".
func parseStatMeta(out string) (fs.FileMode, bool, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 {
		return 0, false, errors.Wrap(errors.ErrParseFailure, "malformed stat output %q", out)
	}

	perm, err := strconv.ParseUint(fields[len(fields)-1], 8, 32)
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrParseFailure, "bad mode in stat output %q", out)
	}

	fileType := strings.Join(fields[:len(fields)-1], " ")
	return fs.FileMode(perm), fileType == "directory", nil
}

// countEntries counts non-empty, non-comment lines.
func countEntries(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		count++
	}
	return count
}

// parseSockets parses `ss -tuln` output into listening endpoints.
func parseSockets(out string) []Socket {
	var sockets []Socket

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "LISTEN") && !strings.Contains(line, "UNCONN") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		addr, port, ok := splitHostPort(fields[4])
		if !ok {
			continue
		}

		sockets = append(sockets, Socket{
			Protocol: fields[0],
			Address:  addr,
			Port:     port,
		})
	}

	return sockets
}

// splitHostPort splits an ss local address, handling both IPv4 and IPv6
// formats: 0.0.0.0:22, [::1]:5432, :::80.
func splitHostPort(localAddr string) (string, int, bool) {
	var bindAddr, portStr string

	if strings.HasPrefix(localAddr, "[") {
		// IPv6 with brackets: [::1]:5432
		closeBracket := strings.Index(localAddr, "]")
		if closeBracket == -1 {
			return "", 0, false
		}
		bindAddr = localAddr[1:closeBracket]
		rest := localAddr[closeBracket+1:]
		portStr = strings.TrimPrefix(rest, ":")
	} else {
		parts := strings.Split(localAddr, ":")
		if len(parts) < 2 {
			return "", 0, false
		}
		portStr = parts[len(parts)-1]
		bindAddr = strings.Join(parts[:len(parts)-1], ":")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, false
	}
	return bindAddr, port, true
}

// countEstablished counts connection rows in `ss -tn state established`
// output. Data rows start with the numeric Recv-Q column, which also
// skips the header.
func countEstablished(out string) int {
	count := 0
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err == nil {
			count++
		}
	}
	return count
}

// filterLines returns the non-empty lines of out containing match,
// preserving order.
func filterLines(out, match string) []string {
	var filtered []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, match) {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}
