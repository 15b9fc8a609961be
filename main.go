package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type options struct {
	start      int
	startSet   bool
	name       string
	configPath string
	noMPRIS    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "theater [flags] <playlist.toml | url | path>",
		Short: "Play a stream or a playlist in the terminal",
		Long: `Play a single stream (URL or local media file) or a TOML playlist.

Playlists advance automatically after a short countdown, honour repeat and
shuffle, and can be reordered from the sidebar. Volume, rate, mute and
playlist modes are remembered between runs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.startSet = cmd.Flags().Changed("start")
			return run(args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.start, "start", "s", 0, "index of the first playlist track to load (0-based)")
	f.StringVarP(&opts.name, "name", "n", "", "override the playlist name")
	f.StringVarP(&opts.configPath, "config", "c", "", "load this config file after the default locations")
	f.BoolVar(&opts.noMPRIS, "no-mpris", false, "do not expose the player on D-Bus")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
