package main

import (
	"github.com/michaelquigley/choirdeck"
	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGenerateCommand().cmd)
}

type generateCommand struct {
	cmd      *cobra.Command
	groups   string
	existing string
	settings string
	output   string
}

func newGenerateCommand() *generateCommand {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a surface configuration from a groups file",
		Args:  cobra.NoArgs,
	}
	out := &generateCommand{cmd: cmd}
	cmd.Flags().StringVarP(&out.groups, "groups", "g", "config.yml", "groups file (YAML)")
	cmd.Flags().StringVarP(&out.existing, "existing", "e", "config.json", "existing configuration to check against the schema (empty to skip)")
	cmd.Flags().StringVarP(&out.settings, "settings", "s", "", "generator settings (YAML); defaults to ~/.config/choirdeck/settings.yaml when present")
	cmd.Flags().StringVarP(&out.output, "output", "o", "-", "output path ('-' for stdout)")
	cmd.RunE = out.run
	return out
}

func (cmd *generateCommand) run(c *cobra.Command, _ []string) error {
	if cmd.existing != "" {
		if _, err := choirdeck.LoadConfig(cmd.existing); err != nil {
			return errors.Wrap(err, "existing configuration failed the schema check")
		}
		dl.Debugf("existing configuration '%v' matches schema", cmd.existing)
	}

	settings, err := cmd.loadSettings()
	if err != nil {
		return err
	}

	input, err := choirdeck.LoadInput(cmd.groups)
	if err != nil {
		return err
	}
	dl.Debugf("loaded %d groups from '%v'", len(input.Groups), cmd.groups)

	cfg, err := choirdeck.NewGenerator(settings, input).Build()
	if err != nil {
		return errors.Wrap(err, "error generating configuration")
	}

	if cmd.output == "-" {
		return choirdeck.WriteConfig(cfg, c.OutOrStdout())
	}
	if err := choirdeck.SaveConfig(cfg, cmd.output); err != nil {
		return err
	}
	dl.Infof("wrote %d pages to '%v'", len(cfg.Pages), cmd.output)
	return nil
}

func (cmd *generateCommand) loadSettings() (*choirdeck.Settings, error) {
	if cmd.settings != "" {
		return choirdeck.LoadSettings(cmd.settings)
	}
	return choirdeck.LoadMainSettings()
}
