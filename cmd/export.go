package main

import (
	"context"

	"github.com/ohess/heartbroken/internal/formatter"
	"github.com/urfave/cli/v3"
)

// exportCommand dumps the dislike store in a chosen format.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the dislike store",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown, or text",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to stdout)",
			},
		},
		Action: r.Export,
	}
}

// Export writes the dislike store's entries to stdout or a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadIfSet(cmd); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	entries, err := r.store.Entries()
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(entries, format, path); err != nil {
			return err
		}
		r.logger.Info("dislike store exported", "path", path, "entries", len(entries))
		return r.writePlain("✓ Exported %d entries to %s\n", len(entries), path)
	}

	data, err := formatter.Export(entries, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
