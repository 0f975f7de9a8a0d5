package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hdrpress/internal/deps"
	"hdrpress/internal/encodeplan"
	"hdrpress/internal/media/hdr10"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var showParams bool

	cmd := &cobra.Command{
		Use:   "probe <input>",
		Short: "Inspect a video's HDR metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ffprobe, err := deps.Resolve("ffprobe", cfg.Tools.FFprobe)
			if err != nil {
				return err
			}

			probe := &hdr10.Probe{FFprobe: ffprobe}
			meta, err := probe.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"color space", meta.ColorSpace},
				{"color primaries", meta.ColorPrimaries},
				{"color transfer", meta.ColorTransfer},
				{"pixel format", meta.PixelFormat},
			}

			displaySD, haveDisplay := meta.SideDataContaining(hdr10.MasteringDisplayLabel)
			lightSD, haveLight := meta.SideDataContaining(hdr10.ContentLightLabel)

			var display hdr10.MasteringDisplay
			if haveDisplay {
				if display, err = hdr10.NormalizeMasteringDisplay(displaySD); err != nil {
					return err
				}
				rows = append(rows,
					[]string{"red", point(display.RedX, display.RedY)},
					[]string{"green", point(display.GreenX, display.GreenY)},
					[]string{"blue", point(display.BlueX, display.BlueY)},
					[]string{"white point", point(display.WhiteX, display.WhiteY)},
					[]string{"luminance", fmt.Sprintf("%d..%d", display.MinLuminance, display.MaxLuminance)},
				)
			}
			var light hdr10.ContentLightLevel
			if haveLight {
				if light, err = hdr10.ParseContentLight(lightSD); err != nil {
					return err
				}
				rows = append(rows,
					[]string{"max content", strconv.Itoa(light.MaxContent)},
					[]string{"max average", strconv.Itoa(light.MaxAverage)},
				)
			}

			writeRows(out, []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})

			if showParams {
				if !haveDisplay || !haveLight {
					return fmt.Errorf("%w: cannot synthesize x265 parameters", hdr10.ErrMetadataMissing)
				}
				fmt.Fprintln(out, encodeplan.X265Params(meta, display, light))
			} else if !haveDisplay || !haveLight {
				return errors.New("input carries no HDR10 static metadata")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showParams, "params", false, "Print the synthesized x265 parameter string")
	return cmd
}

func point(x, y int64) string {
	return fmt.Sprintf("(%d, %d)", x, y)
}
