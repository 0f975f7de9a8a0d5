package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hdrpress/internal/encodeplan"
	"hdrpress/internal/media/cropdetect"
	"hdrpress/internal/pipeline"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var (
		output       string
		quality      int
		preset       string
		tune         string
		scanDuration int
		noHWAccel    bool
	)

	cmd := &cobra.Command{
		Use:   "encode <input>",
		Short: "Analyze an HDR video and re-encode it with x265",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			settings := encodeplan.Settings{
				Encoder:     encodeplan.EncoderX265,
				Quality:     cfg.Encode.Quality,
				Preset:      cfg.Encode.Preset,
				PixelFormat: cfg.Encode.PixelFormat,
				HWAccel:     cfg.Encode.HWAccel,
			}
			settings.Tune, err = encodeplan.ParseTune(cfg.Encode.Tune)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("quality") {
				settings.Quality = quality
			}
			if flags.Changed("preset") {
				settings.Preset = preset
			}
			if flags.Changed("tune") {
				if settings.Tune, err = encodeplan.ParseTune(tune); err != nil {
					return err
				}
			}
			if noHWAccel {
				settings.HWAccel = false
			}
			scan := cfg.Encode.ScanDuration
			if flags.Changed("scan-duration") {
				scan = scanDuration
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			req := pipeline.Request{
				Input:        args[0],
				Output:       output,
				ScanDuration: scan,
				Settings:     settings,
			}
			errOut := cmd.ErrOrStderr()
			if isTerminal(errOut) {
				req.CropProgress = func(p cropdetect.Progress) {
					fmt.Fprintf(errOut, "\rcrop scan: t=%.1fs/%.0fs crop=%s ", p.Elapsed, p.Bound, p.Crop)
				}
			}

			p := pipeline.New(cfg, logger, store)
			result, err := p.Run(cmd.Context(), req)
			if req.CropProgress != nil {
				fmt.Fprintln(errOut)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Encoded %s\n", result.OutputPath)
			fmt.Fprintf(out, "  crop:     %s\n", result.Crop)
			fmt.Fprintf(out, "  params:   %s\n", result.Params)
			fmt.Fprintf(out, "  duration: %s\n", result.Duration.Round(time.Second))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (default: input stem + .x265.mkv)")
	cmd.Flags().IntVarP(&quality, "quality", "q", 0, "CRF quality value (0-51)")
	cmd.Flags().StringVar(&preset, "preset", "", "x265 preset")
	cmd.Flags().StringVar(&tune, "tune", "", "x265 tune (none, grain, animation)")
	cmd.Flags().IntVar(&scanDuration, "scan-duration", 0, "Crop scan bound in seconds")
	cmd.Flags().BoolVar(&noHWAccel, "no-hwaccel", false, "Disable hardware-accelerated decode")
	return cmd
}
