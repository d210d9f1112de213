package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// ExitError carries the exit code of a failed generator run so the
// process can propagate it verbatim.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("project generator exited with code %d", e.Code)
}

// Generate invokes the vendored premake with the platform's toolchain
// action. On Linux it first makes sure VULKAN_SDK is visible to the
// generator, resolving it from a local install when the variable is
// unset.
func (r *Runner) Generate(ctx context.Context) error {
	if r.Platform.OS == "linux" {
		if err := r.ensureVulkanEnv(); err != nil {
			if r.Config.Vulkan.Required {
				return err
			}
			r.Logger.Warn("generating without VULKAN_SDK set", "reason", xerrors.UserMessage(err))
		}
	}

	target, err := r.Config.PremakeDescriptor().ResolveFor(r.Platform.OS)
	if err != nil {
		return err
	}
	bin, err := filepath.Abs(filepath.Join(target.Dir, "premake5"+r.Platform.ExeSuffix))
	if err != nil {
		return err
	}

	r.Logger.Info("generating project files", "toolchain", r.Platform.Toolchain)
	if err := r.Exec.Run(ctx, bin, r.Platform.Toolchain); err != nil {
		var xe *exec.ExitError
		if errors.As(err, &xe) {
			return &ExitError{Code: xe.ExitCode()}
		}
		return xerrors.Wrap(xerrors.CodeGeneratorFailed, err, "run premake")
	}
	r.Logger.Info("project files generated")
	return nil
}

// ensureVulkanEnv exports VULKAN_SDK from a discovered local install
// when the variable is not already set.
func (r *Runner) ensureVulkanEnv() error {
	target, err := r.Config.VulkanDescriptor().ResolveFor(r.Platform.OS)
	if err != nil {
		return err
	}
	if os.Getenv(target.EnvVar) != "" {
		return nil
	}

	if info, err := os.Stat(target.LocalPath); err == nil && info.IsDir() {
		sdkRoot, err := filepath.Abs(target.LocalPath)
		if err != nil {
			return err
		}
		return os.Setenv(target.EnvVar, sdkRoot)
	}

	return xerrors.New(xerrors.CodeNotFound, "no vulkan sdk found; set %s or re-run setup", target.EnvVar)
}
