// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// runCommand starts the watch loop, with the control panel unless --headless.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Watch playback and skip disliked tracks",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "Run without the interactive control panel",
			},
		},
		Action: r.Watch,
	}
}

// authCommand runs the interactive authorization handshake.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Connect your streaming account",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Auth,
	}
}

// dislikeCommand marks the currently playing track, album, or artist as
// disliked and skips it.
func dislikeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dislike",
		Usage: "Dislike and skip what is currently playing",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "kind",
				UsageText: "track|album|artist",
			},
		},
		Flags:  []cli.Flag{configFlag()},
		Action: r.Dislike,
	}
}

// undislikeCommand removes the dislike record for the currently playing
// track, album, or artist.
func undislikeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "undislike",
		Usage: "Remove the dislike for what is currently playing",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "kind",
				UsageText: "track|album|artist",
			},
		},
		Flags:  []cli.Flag{configFlag()},
		Action: r.Undislike,
	}
}

// statusCommand reports credential state and the current track.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show connection state and what is playing",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Status,
	}
}

// setupCommand writes the config template and initializes the dislike store.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and the dislike store",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}
