package probes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/girste/posture/internal/config"
	"github.com/girste/posture/internal/inspect"
	"github.com/girste/posture/internal/system"
)

// UserProbe checks the admin account: existence, sudo group membership,
// login shell, and the passwordless sudoers drop-in. A missing account
// fails the dependent checks instead of skipping them, so the report
// always carries the full check set.
type UserProbe struct{}

func (p *UserProbe) Name() string           { return "user" }
func (p *UserProbe) Timeout() time.Duration { return system.TimeoutShort }

func (p *UserProbe) Run(ctx context.Context, insp inspect.Inspector, cfg *config.Config) []CheckResult {
	admin := cfg.AdminUser

	info, err := insp.LookupUser(ctx, admin)
	if err != nil {
		return []CheckResult{failErr("admin account", err)}
	}

	results := make([]CheckResult, 0, 4)

	if info == nil {
		missing := fmt.Sprintf("account %s missing", admin)
		results = append(results,
			fail("admin account", missing),
			fail("sudo group membership", missing),
			fail("login shell", missing),
		)
		results = append(results, p.sudoersCheck(ctx, insp, cfg))
		return results
	}

	results = append(results, pass("admin account", fmt.Sprintf("%s uid %d", info.Name, info.UID)))

	if info.InGroup("sudo") {
		results = append(results, pass("sudo group membership", admin+" in sudo group"))
	} else {
		results = append(results, fail("sudo group membership", admin+" not in sudo group"))
	}

	if info.Shell == cfg.AdminShell {
		results = append(results, pass("login shell", info.Shell))
	} else {
		results = append(results, warn("login shell",
			fmt.Sprintf("%s (want %s)", info.Shell, cfg.AdminShell)))
	}

	results = append(results, p.sudoersCheck(ctx, insp, cfg))

	return results
}

// sudoersCheck verifies the drop-in grants exactly the expected
// passwordless line. Comparison is line-wise, so surrounding comments do
// not matter.
func (p *UserProbe) sudoersCheck(ctx context.Context, insp inspect.Inspector, cfg *config.Config) CheckResult {
	const name = "sudoers drop-in"
	path := cfg.SudoersPath()

	meta, err := insp.FileMeta(ctx, path)
	if err != nil {
		return failErr(name, err)
	}
	if !meta.Exists {
		return fail(name, path+" missing")
	}

	content, err := insp.FileContent(ctx, path)
	if err != nil {
		return failErr(name, err)
	}

	want := cfg.SudoersLine()
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == want {
			return pass(name, path+" grants passwordless sudo")
		}
	}

	return fail(name, fmt.Sprintf("%s lacks %q", path, want))
}
