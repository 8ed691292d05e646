package main

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/fang"
	"github.com/michaelquigley/df/dl"
	"github.com/spf13/cobra"
)

func init() {
	dl.Init(dl.DefaultOptions().SetLevel(slog.LevelInfo).SetTrimPrefix("github.com/michaelquigley/"))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "choirdeck",
	Short: "Generate control-surface pages for an X32 mixer from channel groups",
	Long: `choirdeck turns a YAML list of channel groups into a 99-page button layout for the
control-surface application. Every page carries a navigation row with one button per
group and a reset button; each group's own page adds a row of level displays with mute
feedback and a row of rotary faders, one per channel.

Generator settings (mixer host, rotary step, reset styling) are read from
~/.config/choirdeck/settings.yaml when present, or from --settings.`,
	Example: `  choirdeck generate -g config.yml -e config.json > new.json
  choirdeck generate -g config.yml -e "" -o config.json
  choirdeck validate config.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			dl.Init(dl.DefaultOptions().SetLevel(slog.LevelDebug).SetTrimPrefix("github.com/michaelquigley/"))
		}
	},
}
var verbose bool

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithoutManpage(), fang.WithoutCompletions(), fang.WithoutVersion()); err != nil {
		dl.Fatal(err)
	}
}
