// Package inspect reads host state for the posture probes. The Inspector
// interface is the seam between probe policy and command execution: probes
// decide pass or fail, an Inspector only reports what the host looks like.
package inspect

import (
	"context"
	"io/fs"
)

// FirewallState is the parsed ufw status.
type FirewallState struct {
	Active          bool
	DefaultIncoming string
	DefaultOutgoing string
	AllowedPorts    []int
}

// UserInfo is a passwd entry plus group membership.
type UserInfo struct {
	Name   string
	UID    int
	GID    int
	Home   string
	Shell  string
	Groups []string
}

// InGroup reports whether the user belongs to the named group.
func (u *UserInfo) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// FileMeta describes a path on the host. Entries is the count of
// non-comment lines and is populated for regular files only.
type FileMeta struct {
	Exists  bool
	IsDir   bool
	Mode    fs.FileMode
	Entries int
}

// Socket is one listening endpoint.
type Socket struct {
	Protocol string
	Address  string
	Port     int
}

// Inspector reads host state. All methods are read-only; implementations
// must not change anything on the host.
type Inspector interface {
	// SSHConfig returns the effective sshd configuration as lowercase
	// keyword to value pairs.
	SSHConfig(ctx context.Context) (map[string]string, error)

	// Firewall returns the ufw state.
	Firewall(ctx context.Context) (*FirewallState, error)

	// LookupUser resolves an account. A missing account returns (nil, nil);
	// an error means the lookup itself could not run.
	LookupUser(ctx context.Context, name string) (*UserInfo, error)

	// FileMeta stats a path. A missing path returns Exists false, not an
	// error.
	FileMeta(ctx context.Context, path string) (*FileMeta, error)

	// FileContent reads a file, escalating to sudo when needed.
	FileContent(ctx context.Context, path string) (string, error)

	// BinaryPresent reports whether a command resolves on PATH.
	BinaryPresent(name string) bool

	// ServiceActive reports whether a systemd unit is active.
	ServiceActive(ctx context.Context, name string) bool

	// ListeningSockets returns every listening TCP and UDP endpoint.
	ListeningSockets(ctx context.Context) ([]Socket, error)

	// EstablishedCount returns the number of established TCP connections.
	EstablishedCount(ctx context.Context) (int, error)

	// QueryLog returns journal lines from the sshd unit within the
	// lookback window that contain match.
	QueryLog(ctx context.Context, match string) ([]string, error)
}
