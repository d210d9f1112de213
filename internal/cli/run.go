package cli

import (
	"github.com/spf13/cobra"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// runCommand creates the run command, the main entry point of the tool.
func (c *CLI) runCommand() *cobra.Command {
	var (
		configPath string
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Install missing dependencies and generate project files",
		Long: `Run validates the development environment end to end: Python tooling,
premake, and the Vulkan SDK. Missing dependencies are installed after a
consent prompt, then premake generates project files for the host
toolchain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(configPath, assumeYes)
			if err != nil {
				return err
			}

			if err := runner.Run(cmd.Context()); err != nil {
				// A Windows SDK install hands off to an interactive
				// installer; that is a clean stop, not a failure.
				if xerrors.Is(err, xerrors.CodeRestartRequired) {
					printNewline()
					printWarning("%s", xerrors.UserMessage(err))
					return nil
				}
				return err
			}

			printNewline()
			printSuccess("environment ready")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a setup.toml config file")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to all prompts")

	return cmd
}
