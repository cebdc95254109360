package inspect

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/girste/posture/internal/errors"
	"github.com/girste/posture/internal/system"
)

// Host inspects the local machine by shelling out to the usual admin
// tooling, escalating through passwordless sudo where required.
type Host struct {
	lookback time.Duration
}

// NewHost returns a live inspector. lookback bounds QueryLog.
func NewHost(lookback time.Duration) *Host {
	return &Host{lookback: lookback}
}

var _ Inspector = (*Host)(nil)

// SSHConfig asks sshd for its effective configuration. The full path
// routes RunCommandSudo through sudo, which sshd -T requires for the
// host keys.
func (h *Host) SSHConfig(ctx context.Context) (map[string]string, error) {
	result, err := system.RunCommandSudo(ctx, system.TimeoutShort, "/usr/sbin/sshd", "-T")
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errors.Wrap(errors.ErrCommandFailed, "sshd -T: %s", firstLine(result.Stderr))
	}
	return parseSSHConfig(result.Stdout), nil
}

// Firewall reads ufw status.
func (h *Host) Firewall(ctx context.Context) (*FirewallState, error) {
	if !system.CommandExists("ufw") {
		return nil, errors.Wrap(errors.ErrCommandNotFound, "ufw")
	}

	result, err := system.RunCommandSudo(ctx, system.TimeoutShort, "ufw", "status", "verbose")
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errors.Wrap(errors.ErrCommandFailed, "ufw status: %s", firstLine(result.Stderr))
	}
	return parseUFWStatus(result.Stdout), nil
}

// LookupUser resolves an account via getent and id. getent exits 2 when
// the key does not exist, which maps to (nil, nil).
func (h *Host) LookupUser(ctx context.Context, name string) (*UserInfo, error) {
	result, err := system.RunCommand(ctx, system.TimeoutShort, "getent", "passwd", name)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		if result.ExitCode == 2 {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCommandFailed, "getent passwd %s: %s", name, firstLine(result.Stderr))
	}

	info, err := parsePasswdRecord(result.Stdout)
	if err != nil {
		return nil, err
	}

	groupResult, err := system.RunCommand(ctx, system.TimeoutShort, "id", "-nG", name)
	if err != nil {
		return nil, err
	}
	if !groupResult.Success {
		return nil, errors.Wrap(errors.ErrCommandFailed, "id -nG %s: %s", name, firstLine(groupResult.Stderr))
	}
	info.Groups = strings.Fields(groupResult.Stdout)

	return info, nil
}

// FileMeta stats a path, reading through sudo so another user's home is
// still visible.
func (h *Host) FileMeta(ctx context.Context, path string) (*FileMeta, error) {
	result, err := system.RunCommandSudo(ctx, system.TimeoutShort, "stat", "-c", "%F %a", path)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		if strings.Contains(result.Stderr, "No such file or directory") {
			return &FileMeta{Exists: false}, nil
		}
		return nil, errors.Wrap(errors.ErrCommandFailed, "stat %s: %s", path, firstLine(result.Stderr))
	}

	mode, isDir, err := parseStatMeta(result.Stdout)
	if err != nil {
		return nil, err
	}

	meta := &FileMeta{Exists: true, IsDir: isDir, Mode: mode}
	if !isDir {
		content, err := h.FileContent(ctx, path)
		if err != nil {
			return nil, err
		}
		meta.Entries = countEntries(content)
	}

	return meta, nil
}

// FileContent reads a file directly, falling back to sudo cat for paths
// the invoking user cannot open.
func (h *Host) FileContent(ctx context.Context, path string) (string, error) {
	if data, err := os.ReadFile(path); err == nil {
		return string(data), nil
	}

	result, err := system.RunCommandSudo(ctx, system.TimeoutShort, "cat", path)
	if err != nil {
		return "", err
	}
	if !result.Success {
		return "", errors.Wrap(errors.ErrCommandFailed, "cat %s: %s", path, firstLine(result.Stderr))
	}
	return result.Stdout, nil
}

// BinaryPresent reports whether a command resolves on PATH.
func (h *Host) BinaryPresent(name string) bool {
	return system.CommandExists(name)
}

// ServiceActive reports whether a systemd unit is active.
func (h *Host) ServiceActive(ctx context.Context, name string) bool {
	return system.IsServiceActive(ctx, name)
}

// ListeningSockets lists listening TCP and UDP endpoints via ss.
func (h *Host) ListeningSockets(ctx context.Context) ([]Socket, error) {
	result, err := system.RunCommand(ctx, system.TimeoutShort, "ss", "-tuln")
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errors.Wrap(errors.ErrCommandFailed, "ss -tuln: %s", firstLine(result.Stderr))
	}
	return parseSockets(result.Stdout), nil
}

// EstablishedCount counts established TCP connections via ss.
func (h *Host) EstablishedCount(ctx context.Context) (int, error) {
	result, err := system.RunCommand(ctx, system.TimeoutShort, "ss", "-tn", "state", "established")
	if err != nil {
		return 0, err
	}
	if !result.Success {
		return 0, errors.Wrap(errors.ErrCommandFailed, "ss -tn: %s", firstLine(result.Stderr))
	}
	return countEstablished(result.Stdout), nil
}

// QueryLog pulls sshd journal lines inside the lookback window that
// contain match. The window is passed in minutes because journalctl
// reads a bare "m" suffix as months.
func (h *Host) QueryLog(ctx context.Context, match string) ([]string, error) {
	since := fmt.Sprintf("-%dmin", int(h.lookback.Minutes()))
	result, err := system.RunCommandSudo(ctx, system.TimeoutMedium,
		"journalctl", "-u", "ssh", "--no-pager", "-q", "--since", since)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errors.Wrap(errors.ErrCommandFailed, "journalctl: %s", firstLine(result.Stderr))
	}
	return filterLines(result.Stdout, match), nil
}

// firstLine trims command stderr down to its leading line for error
// details.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[:i]
	}
	if s == "" {
		return "no output"
	}
	return s
}
