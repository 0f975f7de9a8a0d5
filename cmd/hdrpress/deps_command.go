package main

import (
	"errors"

	"github.com/spf13/cobra"

	"hdrpress/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			requirements := []deps.Requirement{
				{Name: "ffmpeg", Command: commandFor("ffmpeg", cfg.Tools.FFmpeg), Description: "crop scanning and encoding"},
				{Name: "ffprobe", Command: commandFor("ffprobe", cfg.Tools.FFprobe), Description: "HDR metadata probing"},
			}
			statuses := deps.CheckBinaries(requirements)

			rows := make([][]string, 0, len(statuses))
			missing := false
			for _, status := range statuses {
				detail := status.Command
				if !status.Available {
					missing = true
					detail = status.Detail
				}
				rows = append(rows, []string{
					status.Name,
					yesNo(status.Available),
					detail,
					status.Description,
				})
			}
			writeRows(cmd.OutOrStdout(),
				[]string{"Binary", "Available", "Path", "Used for"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft})

			if missing {
				return errors.New("one or more required binaries are missing")
			}
			return nil
		},
	}
}

func commandFor(name, override string) string {
	if override != "" {
		return override
	}
	return name
}
