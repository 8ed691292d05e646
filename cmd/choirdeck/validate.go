package main

import (
	"fmt"

	"github.com/michaelquigley/choirdeck"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newValidateCommand().cmd)
}

type validateCommand struct {
	cmd *cobra.Command
}

func newValidateCommand() *validateCommand {
	cmd := &cobra.Command{
		Use:   "validate <config.json>",
		Short: "Check that a surface configuration matches the schema",
		Args:  cobra.ExactArgs(1),
	}
	out := &validateCommand{cmd: cmd}
	cmd.RunE = out.run
	return out
}

func (cmd *validateCommand) run(c *cobra.Command, args []string) error {
	cfg, err := choirdeck.LoadConfig(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.OutOrStdout(), "'%v' is valid: %d pages, %d instances\n", args[0], len(cfg.Pages), len(cfg.Instances))
	return err
}
