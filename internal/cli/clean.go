package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cleanCommand creates the clean command for removing vendored tools.
func (c *CLI) cleanCommand() *cobra.Command {
	var (
		configPath string
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove vendored tools",
		Long: `Clean removes the vendor directory and everything installed under it.
System-wide installs (such as a Vulkan SDK outside the project) are not
touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(configPath, assumeYes)
			if err != nil {
				return err
			}

			if !assumeYes {
				question := fmt.Sprintf("Remove %s and everything under it?", runner.Config.VendorDir)
				if !c.confirm(question) {
					printInfo("nothing removed")
					return nil
				}
			}

			if err := runner.Clean(); err != nil {
				return err
			}
			printSuccess("removed %s", runner.Config.VendorDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a setup.toml config file")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
