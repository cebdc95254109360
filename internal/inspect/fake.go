package inspect

import (
	"context"

	"github.com/girste/posture/internal/errors"
)

// Fake is an in-memory Inspector holding a fixed host snapshot. Tests
// populate only the fields their probe reads; zero values behave like an
// empty host. Err fields, when set, override the corresponding method.
type Fake struct {
	SSH    map[string]string
	SSHErr error

	FW    *FirewallState
	FWErr error

	Users   map[string]*UserInfo
	UserErr error

	Files      map[string]*FileMeta
	FileErr    error
	Contents   map[string]string
	ContentErr error

	Binaries map[string]bool
	Services map[string]bool

	Sockets    []Socket
	SocketsErr error

	Established    int
	EstablishedErr error

	LogLines map[string][]string
	LogErr   error
}

var _ Inspector = (*Fake)(nil)

func (f *Fake) SSHConfig(ctx context.Context) (map[string]string, error) {
	if f.SSHErr != nil {
		return nil, f.SSHErr
	}
	return f.SSH, nil
}

func (f *Fake) Firewall(ctx context.Context) (*FirewallState, error) {
	if f.FWErr != nil {
		return nil, f.FWErr
	}
	if f.FW == nil {
		return &FirewallState{}, nil
	}
	return f.FW, nil
}

func (f *Fake) LookupUser(ctx context.Context, name string) (*UserInfo, error) {
	if f.UserErr != nil {
		return nil, f.UserErr
	}
	return f.Users[name], nil
}

func (f *Fake) FileMeta(ctx context.Context, path string) (*FileMeta, error) {
	if f.FileErr != nil {
		return nil, f.FileErr
	}
	if meta, ok := f.Files[path]; ok {
		return meta, nil
	}
	return &FileMeta{Exists: false}, nil
}

func (f *Fake) FileContent(ctx context.Context, path string) (string, error) {
	if f.ContentErr != nil {
		return "", f.ContentErr
	}
	content, ok := f.Contents[path]
	if !ok {
		return "", errors.Wrap(errors.ErrCommandFailed, "cat %s: no such file", path)
	}
	return content, nil
}

func (f *Fake) BinaryPresent(name string) bool {
	return f.Binaries[name]
}

func (f *Fake) ServiceActive(ctx context.Context, name string) bool {
	return f.Services[name]
}

func (f *Fake) ListeningSockets(ctx context.Context) ([]Socket, error) {
	if f.SocketsErr != nil {
		return nil, f.SocketsErr
	}
	return f.Sockets, nil
}

func (f *Fake) EstablishedCount(ctx context.Context) (int, error) {
	if f.EstablishedErr != nil {
		return 0, f.EstablishedErr
	}
	return f.Established, nil
}

func (f *Fake) QueryLog(ctx context.Context, match string) ([]string, error) {
	if f.LogErr != nil {
		return nil, f.LogErr
	}
	return f.LogLines[match], nil
}
