package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hemodyn/starling/internal/config"
	"github.com/hemodyn/starling/internal/dataset"
)

// templateDataFile is the name of the starter data-entry CSV.
const templateDataFile = "starling-data.csv"

// configTemplate is the starter configuration written by init.
const configTemplate = `# starling configuration file
#
# defaults apply to every dataset; per-dataset entries (matched by file
# name or full path) override them.
defaults:
  # volumeColumn: "IV Volume (mL)"
  # responseColumn: "ΔVTI (cm)"
  # commaDecimal: false

datasets:
  # monitor-export.csv:
  #   volumeColumn: "Volume"
  #   responseColumn: "Delta VTI"
  #   commaDecimal: true
`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file and data-entry template",
		Long: `Init writes a .starling configuration file and a starling-data.csv
data-entry template to the current directory.

The template contains the standard volume loading steps (75-300 mL) with
the response column left blank; fill in measured ΔVTI values and run
'starling analyze starling-data.csv'.`,
		RunE: runInitCmd,
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigTemplate(cmd, force); err != nil {
		return err
	}
	return writeDataTemplate(cmd, force)
}

// writeConfigTemplate writes the .starling config file.
func writeConfigTemplate(cmd *cobra.Command, force bool) error {
	if _, err := os.Stat(config.DefaultConfigFile); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultConfigFile)
	}

	if err := os.WriteFile(config.DefaultConfigFile, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.DefaultConfigFile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.DefaultConfigFile)
	return nil
}

// writeDataTemplate writes the starter data-entry CSV.
func writeDataTemplate(cmd *cobra.Command, force bool) error {
	if _, err := os.Stat(templateDataFile); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", templateDataFile)
	}

	if err := dataset.WriteFile(templateDataFile, dataset.DefaultDataset(), dataset.Options{}); err != nil {
		return fmt.Errorf("failed to write %s: %w", templateDataFile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", templateDataFile)
	return nil
}
