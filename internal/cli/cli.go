// Package cli implements the setup command-line interface.
//
// This package provides commands for bootstrapping the development
// environment: installing premake and the Vulkan SDK, checking the
// Python tooling, generating project files, and cleaning vendored
// installs. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Validate dependencies, install missing ones, generate projects
//   - check: Report dependency status without changing anything
//   - clean: Remove vendored tools
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TeakSlack/VulkanProjects/pkg/bootstrap"
	"github.com/TeakSlack/VulkanProjects/pkg/buildinfo"
	"github.com/TeakSlack/VulkanProjects/pkg/deps"
	"github.com/TeakSlack/VulkanProjects/pkg/fetch"
	"github.com/TeakSlack/VulkanProjects/pkg/platform"
)

// appName is the application name used for display.
const appName = "setup"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Setup bootstraps the Vulkan development environment",
		Long:         `Setup prepares a machine for building the Vulkan projects: it installs premake and the Vulkan SDK when missing, verifies the Python tooling, and generates project files for the host toolchain.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cleanCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner builds a fully wired bootstrap runner.
func (c *CLI) newRunner(configPath string, assumeYes bool) (*bootstrap.Runner, error) {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	plat, err := platform.Resolve()
	if err != nil {
		return nil, err
	}

	consent := c.confirm
	if assumeYes {
		consent = func(string) bool { return true }
	}

	bar := newTransferBar(os.Stderr)
	return &bootstrap.Runner{
		Config:   cfg,
		Platform: plat,
		Logger:   c.Logger,
		Consent:  consent,
		Fetcher:  fetch.NewFetcher(),
		Exec:     deps.ExecRunner{},
		Progress: bar.Update,
	}, nil
}
