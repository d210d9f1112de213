package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/TeakSlack/VulkanProjects/pkg/deps"
	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
	"github.com/TeakSlack/VulkanProjects/pkg/fetch"
	"github.com/TeakSlack/VulkanProjects/pkg/platform"
)

// Runner drives the full bootstrap pipeline. All collaborators are
// injected; the zero value is not usable.
type Runner struct {
	Config   Config
	Platform platform.Platform
	Logger   *log.Logger
	Consent  deps.ConsentFunc
	Fetcher  deps.Fetcher
	Exec     deps.Runner
	Progress fetch.Progress
}

// Status is one row of a read-only environment report.
type Status struct {
	Name     string
	Result   deps.Result
	Location string // where the dependency was found, "" when absent
}

// Run executes the pipeline: Python tooling, premake, the Vulkan SDK,
// then project generation.
//
// Python failures only warn; the helper scripts are optional. Premake is
// mandatory because generation cannot proceed without it. The SDK is a
// warning unless configured required, except on Windows where a fresh
// install hands off to an interactive installer and returns
// RESTART_REQUIRED.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.validatePython(ctx); err != nil {
		return err
	}
	if err := r.validatePremake(ctx); err != nil {
		return err
	}
	if err := r.validateVulkan(ctx); err != nil {
		return err
	}
	return r.Generate(ctx)
}

// Check reports the state of every dependency without prompting,
// downloading, or mutating anything.
func (r *Runner) Check(ctx context.Context) ([]Status, error) {
	var statuses []Status

	py := r.pythonSetup()
	res, loc := py.Status(ctx)
	statuses = append(statuses, Status{Name: "Python", Result: res, Location: loc})

	for _, d := range []deps.Descriptor{r.Config.PremakeDescriptor(), r.Config.VulkanDescriptor()} {
		target, err := d.ResolveFor(r.Platform.OS)
		if err != nil {
			return nil, err
		}
		ins := &deps.Installer{Target: target, Logger: r.Logger}
		res, loc := ins.Status()
		statuses = append(statuses, Status{Name: target.Name, Result: res, Location: loc})
	}
	return statuses, nil
}

// Clean removes the vendor directory and everything installed under it.
// Installs outside it (a system-wide SDK) are left alone.
func (r *Runner) Clean() error {
	r.Logger.Info("removing vendored tools", "dir", r.Config.VendorDir)
	return os.RemoveAll(r.Config.VendorDir)
}

func (r *Runner) validatePython(ctx context.Context) error {
	py := r.pythonSetup()
	res, err := py.Validate(ctx)
	if err != nil {
		if xerrors.Is(err, xerrors.CodeNotFound) {
			r.Logger.Warn("python tooling unavailable, helper scripts will not work", "reason", xerrors.UserMessage(err))
			return nil
		}
		return err
	}
	switch res {
	case deps.ResultOutOfDate:
		r.Logger.Warn("python below the supported version, helper scripts may not work")
	case deps.ResultDeclined:
		r.Logger.Warn("python packages declined, helper scripts may not work")
	}
	return nil
}

func (r *Runner) validatePremake(ctx context.Context) error {
	target, err := r.Config.PremakeDescriptor().ResolveFor(r.Platform.OS)
	if err != nil {
		return err
	}
	ins := &deps.Installer{
		Target:   target,
		Fetcher:  r.Fetcher,
		Consent:  r.Consent,
		Logger:   r.Logger,
		Progress: r.Progress,
	}
	res, err := ins.Validate(ctx)
	if err != nil {
		return err
	}
	switch res {
	case deps.ResultDeclined:
		return xerrors.New(xerrors.CodeConsentDeclined, "premake is required to generate project files")
	case deps.ResultOutOfDate:
		return xerrors.New(xerrors.CodeVersionMismatch, "installed premake is older than %s", target.RequiredVersion)
	}
	return nil
}

func (r *Runner) validateVulkan(ctx context.Context) error {
	target, err := r.Config.VulkanDescriptor().ResolveFor(r.Platform.OS)
	if err != nil {
		return err
	}
	ins := &deps.Installer{
		Target:   target,
		Fetcher:  r.Fetcher,
		Consent:  r.Consent,
		Logger:   r.Logger,
		Progress: r.Progress,
		Activate: r.activateVulkan,
	}
	res, err := ins.Validate(ctx)
	if err != nil {
		if xerrors.Is(err, xerrors.CodeRestartRequired) {
			return err
		}
		if r.Config.Vulkan.Required {
			return err
		}
		r.Logger.Warn("vulkan sdk unavailable", "reason", xerrors.UserMessage(err))
		return nil
	}
	if !res.Acceptable() {
		if r.Config.Vulkan.Required {
			return xerrors.New(xerrors.CodeConsentDeclined, "vulkan sdk is required but %s", res)
		}
		r.Logger.Warn("continuing without the vulkan sdk", "state", res.String())
	}
	return nil
}

// activateVulkan makes a fresh SDK install usable.
//
// On Windows the downloaded artifact is an interactive installer; it is
// handed off and the pipeline stops with RESTART_REQUIRED since the
// installer's environment changes cannot reach this process. On Linux
// the SDK is self-contained: VULKAN_SDK is exported into this process so
// generation can proceed immediately, and the user's shell profile is
// offered a persistent source line.
func (r *Runner) activateVulkan(ctx context.Context, t deps.Target) error {
	if r.Platform.OS == "windows" {
		r.Logger.Info("launching the vulkan sdk installer")
		if err := r.Exec.Run(ctx, t.ArchivePath); err != nil {
			return xerrors.Wrap(xerrors.CodeInternal, err, "vulkan sdk installer")
		}
		return xerrors.New(xerrors.CodeRestartRequired,
			"vulkan sdk installed; re-run this tool in a new terminal to pick up its environment")
	}

	sdkRoot, err := filepath.Abs(filepath.Join(t.Dir, t.InstallVersion, "x86_64"))
	if err != nil {
		return err
	}
	if err := os.Setenv(t.EnvVar, sdkRoot); err != nil {
		return err
	}
	r.Logger.Info("exported environment", "var", t.EnvVar, "value", sdkRoot)

	return r.persistVulkanEnv(sdkRoot)
}

// persistVulkanEnv offers to add the SDK's setup-env.sh to the user's
// shell profile so future shells see it without re-running setup.
func (r *Runner) persistVulkanEnv(sdkRoot string) error {
	if r.Platform.ShellProfile == "" {
		r.Logger.Warn("unsupported shell, add the vulkan sdk to your environment manually",
			"script", filepath.Join(filepath.Dir(sdkRoot), "setup-env.sh"))
		return nil
	}

	line := fmt.Sprintf("source %s", filepath.Join(filepath.Dir(sdkRoot), "setup-env.sh"))
	question := fmt.Sprintf("Would you like to add the Vulkan SDK to %s?", r.Platform.ShellProfile)
	if r.Consent == nil || !r.Consent(question) {
		return nil
	}

	added, err := deps.EnsureLine(r.Platform.ShellProfile, line)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeInternal, err, "update %s", r.Platform.ShellProfile)
	}
	if added {
		r.Logger.Info("updated shell profile", "file", r.Platform.ShellProfile)
	}
	return nil
}

func (r *Runner) pythonSetup() *deps.PythonSetup {
	return &deps.PythonSetup{
		Exe:      r.Config.Python.Exe,
		MinMajor: 3,
		MinMinor: 3,
		Packages: r.Config.Python.Packages,
		Runner:   r.Exec,
		Consent:  r.Consent,
		Logger:   r.Logger,
	}
}
