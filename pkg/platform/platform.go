// Package platform resolves the per-OS parameters the bootstrap needs.
//
// Everything OS-specific is decided exactly once, at startup, and carried
// around as plain data: the premake action to generate project files for,
// the executable suffix, and which shell profile (if any) can receive
// environment wiring. Adding a platform is a data change here, not a
// branch sprinkled through the installers.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// Premake actions per platform.
const (
	ToolchainVS2022 = "vs2022"
	ToolchainGmake2 = "gmake2"
)

// Platform is the closed set of OS-dependent parameters, resolved once
// and treated as immutable afterwards.
type Platform struct {
	OS           string // GOOS value ("windows", "linux")
	Arch         string // GOARCH value
	Toolchain    string // premake action for project generation
	ExeSuffix    string // ".exe" on Windows, "" elsewhere
	Shell        string // "bash", "zsh", or "" when unsupported/unknown
	ShellProfile string // absolute path to the shell rc file, "" when none
}

// Resolve returns the parameters for the current process environment.
func Resolve() (Platform, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return ResolveFor(runtime.GOOS, runtime.GOARCH, os.Getenv("SHELL"), home)
}

// ResolveFor resolves parameters for an explicit OS, architecture, shell
// identifier, and home directory. Unsupported operating systems fail with
// PLATFORM_UNSUPPORTED.
func ResolveFor(goos, arch, shellEnv, home string) (Platform, error) {
	p := Platform{OS: goos, Arch: arch}

	switch goos {
	case "windows":
		p.Toolchain = ToolchainVS2022
		p.ExeSuffix = ".exe"
	case "linux":
		p.Toolchain = ToolchainGmake2
	default:
		return Platform{}, xerrors.New(xerrors.CodePlatformUnsupported, "no toolchain configured for %s", goos)
	}

	// Only bash and zsh profiles receive environment wiring; anything
	// else is reported and skipped by the installers.
	switch {
	case strings.Contains(shellEnv, "bash"):
		p.Shell = "bash"
		p.ShellProfile = filepath.Join(home, ".bashrc")
	case strings.Contains(shellEnv, "zsh"):
		p.Shell = "zsh"
		p.ShellProfile = filepath.Join(home, ".zshrc")
	}
	if home == "" {
		p.ShellProfile = ""
	}

	return p, nil
}
