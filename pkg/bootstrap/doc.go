// Package bootstrap orchestrates the development environment setup: it
// validates the Python tooling, installs premake and the Vulkan SDK when
// missing (with user consent), and invokes premake to generate project
// files for the host toolchain.
//
// The package is a thin pipeline over pkg/deps installers. Policy lives
// here: which dependencies are mandatory, which failures downgrade to
// warnings, and how each install is activated for the current platform.
package bootstrap
