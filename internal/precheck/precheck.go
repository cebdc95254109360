// Package precheck gates the audit on its two launch preconditions:
// a non-root caller and passwordless sudo.
package precheck

import (
	"context"
	"os"

	"github.com/girste/posture/internal/errors"
	"github.com/girste/posture/internal/system"
)

// RefuseRoot rejects a root caller. Privileged reads escalate per
// command through sudo -n instead.
func RefuseRoot() error {
	if os.Geteuid() == 0 {
		return errors.Wrap(errors.ErrRootUser, "precondition check")
	}
	return nil
}

// RequireSudo verifies sudo works without a password prompt.
func RequireSudo(ctx context.Context) error {
	if !system.HasPasswordlessSudo(ctx) {
		return errors.Wrap(errors.ErrSudoUnavailable, "precondition check")
	}
	return nil
}

// Run evaluates both preconditions in order and returns the first
// violation. Nothing is probed until this passes.
func Run(ctx context.Context) error {
	if err := RefuseRoot(); err != nil {
		return err
	}
	return RequireSudo(ctx)
}
