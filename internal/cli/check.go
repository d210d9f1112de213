package cli

import (
	"github.com/spf13/cobra"

	"github.com/TeakSlack/VulkanProjects/pkg/deps"
	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// checkCommand creates the check command, a read-only environment report.
func (c *CLI) checkCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report dependency status without installing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(configPath, false)
			if err != nil {
				return err
			}

			statuses, err := runner.Check(cmd.Context())
			if err != nil {
				return err
			}

			ready := true
			premakeOK := true
			for _, s := range statuses {
				switch s.Result {
				case deps.ResultSatisfied:
					printSuccess("%s", s.Name)
					if s.Location != "" {
						printDetail("%s", s.Location)
					}
				case deps.ResultOutOfDate:
					printWarning("%s is out of date", s.Name)
					if s.Location != "" {
						printDetail("%s", s.Location)
					}
					ready = false
				default:
					printError("%s is missing", s.Name)
					ready = false
				}
				if s.Name == "Premake" && s.Result != deps.ResultSatisfied {
					premakeOK = false
				}
			}

			printNewline()
			if ready {
				printSuccess("environment ready")
				return nil
			}
			printInfo("run '%s run' to install missing dependencies", appName)
			// Only the build tool is mandatory; anything else missing is
			// reported but does not fail the check.
			if !premakeOK {
				return xerrors.New(xerrors.CodeNotFound, "premake is not installed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a setup.toml config file")

	return cmd
}
