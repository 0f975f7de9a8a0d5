package encodeplan

import (
	"fmt"
	"strconv"

	"hdrpress/internal/media/cropdetect"
	"hdrpress/internal/media/hdr10"
)

// X265Params formats the codec parameter string embedding the HDR10
// metadata, in the fixed order x265 documents: HDR optimization,
// repeat-headers, the color tags copied verbatim from the probed frame
// (unknown tags are forwarded; rejection is the encoder's call), the
// master-display block, and the content light token.
//
// The master-display luminance pair is ordered (max, min) - the reverse of
// the struct's natural field order - per x265's syntax.
func X265Params(meta *hdr10.FrameMetadata, display hdr10.MasteringDisplay, light hdr10.ContentLightLevel) string {
	return fmt.Sprintf(
		"hdr-opt=1:repeat-headers=1:colorprim=%s:transfer=%s:colormatrix=%s:"+
			"master-display=G(%d,%d)B(%d,%d)R(%d,%d)WP(%d,%d)L(%d,%d):max-cll=%d,%d",
		meta.ColorPrimaries, meta.ColorTransfer, meta.ColorSpace,
		display.GreenX, display.GreenY,
		display.BlueX, display.BlueY,
		display.RedX, display.RedY,
		display.WhiteX, display.WhiteY,
		display.MaxLuminance, display.MinLuminance,
		light.MaxContent, light.MaxAverage,
	)
}

// BuildArgs assembles the complete ordered argument sequence for the final
// encode. Input-scoped flags always precede the input path and
// output-scoped flags always follow it; the two halves are built
// separately and concatenated so the ordering holds structurally.
func BuildArgs(input, output string, crop cropdetect.Box, params string, s Settings) []string {
	inputArgs := []string{
		"-hide_banner",
		"-loglevel", "info",
		"-y",
		"-probesize", "6000M",
		"-analyzeduration", "6000M",
	}
	if s.HWAccel {
		inputArgs = append(inputArgs, "-hwaccel", "auto")
	}
	inputArgs = append(inputArgs, "-i", input)

	outputArgs := []string{
		"-map", "0",
		"-c:v", s.Encoder,
		"-crf", strconv.Itoa(s.Quality),
		"-preset", s.Preset,
	}
	if s.Tune != TuneNone && s.Tune != "" {
		outputArgs = append(outputArgs, "-tune", string(s.Tune))
	}
	outputArgs = append(outputArgs,
		"-vf", crop.Filter(),
		"-x265-params", params,
		"-c:a", "copy",
		"-c:s", "copy",
		"-max_muxing_queue_size", "9999",
		"-pix_fmt", s.PixelFormat,
		output,
	)

	return append(inputArgs, outputArgs...)
}
