package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdrpress/internal/deps"
	"hdrpress/internal/media/cropdetect"
)

func newCropCommand(ctx *commandContext) *cobra.Command {
	var scanDuration int
	var noHWAccel bool

	cmd := &cobra.Command{
		Use:   "crop <input>",
		Short: "Detect the active picture area without encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ffmpeg, err := deps.Resolve("ffmpeg", cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}

			scan := cfg.Encode.ScanDuration
			if cmd.Flags().Changed("scan-duration") {
				scan = scanDuration
			}
			detector := &cropdetect.Detector{
				FFmpeg:       ffmpeg,
				ScanDuration: scan,
				HWAccel:      cfg.Encode.HWAccel && !noHWAccel,
			}

			var progress func(cropdetect.Progress)
			errOut := cmd.ErrOrStderr()
			if isTerminal(errOut) {
				progress = func(p cropdetect.Progress) {
					fmt.Fprintf(errOut, "\rcrop scan: t=%.1fs/%.0fs crop=%s ", p.Elapsed, p.Bound, p.Crop)
				}
			}

			box, err := detector.Detect(cmd.Context(), args[0], progress)
			if progress != nil {
				fmt.Fprintln(errOut)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), box.Filter())
			return nil
		},
	}

	cmd.Flags().IntVar(&scanDuration, "scan-duration", 0, "Crop scan bound in seconds")
	cmd.Flags().BoolVar(&noHWAccel, "no-hwaccel", false, "Disable hardware-accelerated decode")
	return cmd
}
