package probes

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/system"
)

// SSHKeyProbe checks the key material under the admin home: ~/.ssh at
// mode 700, authorized_keys at 600, and at least one key entry. Absent
// paths warn rather than fail because a fresh host is legitimately not
// yet provisioned; wrong permissions on present paths always fail.
type SSHKeyProbe struct{}

func (p *SSHKeyProbe) Name() string           { return "ssh-key" }
func (p *SSHKeyProbe) Timeout() time.Duration { return system.TimeoutShort }

func (p *SSHKeyProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	// Lookup trouble falls back to the conventional home path; the user
	// probe already reports account problems.
	home := "/home/" + cfg.AdminUser
	if info, err := insp.LookupUser(ctx, cfg.AdminUser); err == nil && info != nil && info.Home != "" {
		home = info.Home
	}

	sshDir := filepath.Join(home, ".ssh")
	authKeys := filepath.Join(sshDir, "authorized_keys")

	results := make([]CheckResult, 0, 3)
	results = append(results, p.dirCheck(ctx, insp, sshDir))

	keyMeta, err := insp.FileMeta(ctx, authKeys)
	if err != nil {
		results = append(results,
			failErr("authorized keys permissions", err),
			failErr("authorized key count", err))
		return results
	}

	switch {
	case !keyMeta.Exists:
		results = append(results, warn("authorized keys permissions", authKeys+" not yet provisioned"))
	case keyMeta.IsDir:
		results = append(results, fail("authorized keys permissions", authKeys+" is a directory"))
	case keyMeta.Mode.Perm() != 0o600:
		results = append(results, fail("authorized keys permissions",
			fmt.Sprintf("%s mode %o (want 600)", authKeys, keyMeta.Mode.Perm())))
	default:
		results = append(results, pass("authorized keys permissions", authKeys+" mode 600"))
	}

	switch {
	case !keyMeta.Exists || keyMeta.IsDir:
		results = append(results, warn("authorized key count", authKeys+" absent"))
	case keyMeta.Entries == 0:
		results = append(results, warn("authorized key count", "no key entries"))
	case keyMeta.Entries == 1:
		results = append(results, pass("authorized key count", "1 key entry"))
	default:
		results = append(results, pass("authorized key count",
			fmt.Sprintf("%d key entries", keyMeta.Entries)))
	}

	return results
}

func (p *SSHKeyProbe) dirCheck(ctx context.Context, insp inspect.Inspector, sshDir string) CheckResult {
	const name = "ssh directory permissions"

	meta, err := insp.FileMeta(ctx, sshDir)
	switch {
	case err != nil:
		return failErr(name, err)
	case !meta.Exists:
		return warn(name, sshDir+" not yet provisioned")
	case !meta.IsDir:
		return fail(name, sshDir+" is not a directory")
	case meta.Mode.Perm() != 0o700:
		return fail(name, fmt.Sprintf("%s mode %o (want 700)", sshDir, meta.Mode.Perm()))
	default:
		return pass(name, sshDir+" mode 700")
	}
}
