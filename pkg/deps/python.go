package deps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// PythonSetup validates the language runtime and its helper packages.
//
// Unlike the archive installers, nothing here is downloaded directly: the
// interpreter can only be detected (never auto-installed), and packages
// are installed through pip in a subprocess, consent-gated per package.
type PythonSetup struct {
	Exe      string   // interpreter executable, e.g. "python3"
	MinMajor int      // minimum interpreter major version
	MinMinor int      // minimum interpreter minor version
	Packages []string // pip packages the helper scripts need
	Runner   Runner
	Consent  ConsentFunc
	Logger   *log.Logger
}

// Validate checks the interpreter version and ensures every configured
// package is importable, installing missing ones via pip after consent.
//
// A missing interpreter or missing pip is an error (NOT_FOUND) for the
// caller to downgrade to a warning; an interpreter below the minimum
// version is ResultOutOfDate, reported but never upgraded.
func (p *PythonSetup) Validate(ctx context.Context) (Result, error) {
	major, minor, patch, err := p.interpreterVersion(ctx)
	if err != nil {
		return ResultMissing, err
	}
	p.logger().Info("python found", "version", fmt.Sprintf("%d.%d.%d", major, minor, patch))

	if major < p.MinMajor || (major == p.MinMajor && minor < p.MinMinor) {
		p.logger().Warn("python too old",
			"found", fmt.Sprintf("%d.%d", major, minor),
			"required", fmt.Sprintf("%d.%d", p.MinMajor, p.MinMinor))
		return ResultOutOfDate, nil
	}

	if len(p.Packages) == 0 {
		return ResultSatisfied, nil
	}

	if _, err := p.Runner.Output(ctx, p.Exe, "-m", "pip", "--version"); err != nil {
		return ResultMissing, xerrors.Wrap(xerrors.CodeNotFound, err, "pip is unavailable; please install pip")
	}

	result := ResultSatisfied
	for _, pkg := range p.Packages {
		if p.hasPackage(ctx, pkg) {
			continue
		}
		p.logger().Warn("package not found", "name", pkg)
		if p.Consent == nil || !p.Consent(fmt.Sprintf("Would you like to install Python package %s?", pkg)) {
			result = ResultDeclined
			continue
		}
		p.logger().Info("installing package", "name", pkg)
		if err := p.Runner.Run(ctx, p.Exe, "-m", "pip", "install", pkg); err != nil {
			return ResultMissing, xerrors.Wrap(xerrors.CodeInternal, err, "pip install %s", pkg)
		}
		if !p.hasPackage(ctx, pkg) {
			return ResultMissing, xerrors.New(xerrors.CodeInternal, "package %s still missing after install", pkg)
		}
		if result == ResultSatisfied {
			result = ResultInstalled
		}
	}
	return result, nil
}

// Status reports the runtime's state without prompting or installing.
func (p *PythonSetup) Status(ctx context.Context) (Result, string) {
	major, minor, patch, err := p.interpreterVersion(ctx)
	if err != nil {
		return ResultMissing, ""
	}
	version := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if major < p.MinMajor || (major == p.MinMajor && minor < p.MinMinor) {
		return ResultOutOfDate, version
	}
	for _, pkg := range p.Packages {
		if !p.hasPackage(ctx, pkg) {
			return ResultMissing, version
		}
	}
	return ResultSatisfied, version
}

func (p *PythonSetup) interpreterVersion(ctx context.Context) (major, minor, patch int, err error) {
	out, err := p.Runner.Output(ctx, p.Exe, "--version")
	if err != nil {
		return 0, 0, 0, xerrors.Wrap(xerrors.CodeNotFound, err, "%s not found", p.Exe)
	}
	major, minor, patch, err = parsePythonVersion(out)
	if err != nil {
		return 0, 0, 0, xerrors.Wrap(xerrors.CodeInternal, err, "parse %s version", p.Exe)
	}
	return major, minor, patch, nil
}

func (p *PythonSetup) hasPackage(ctx context.Context, pkg string) bool {
	// Import probe; pip names use '-' where module names use '_'.
	module := strings.ReplaceAll(pkg, "-", "_")
	_, err := p.Runner.Output(ctx, p.Exe, "-c", "import "+module)
	return err == nil
}

// parsePythonVersion parses "Python 3.11.2" style output.
func parsePythonVersion(out string) (major, minor, patch int, err error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 {
		return 0, 0, 0, fmt.Errorf("unexpected version output %q", out)
	}
	parts := strings.Split(fields[len(fields)-1], ".")
	nums := make([]int, 0, 3)
	for _, part := range parts {
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			break
		}
		nums = append(nums, n)
	}
	if len(nums) < 2 {
		return 0, 0, 0, fmt.Errorf("unexpected version output %q", out)
	}
	major, minor = nums[0], nums[1]
	if len(nums) > 2 {
		patch = nums[2]
	}
	return major, minor, patch, nil
}

func (p *PythonSetup) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
