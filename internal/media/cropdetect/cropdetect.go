// Package cropdetect discovers the active picture area of a video by
// scanning a bounded prefix with ffmpeg's cropdetect filter.
package cropdetect

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hdrpress/internal/media/runner"
)

// ErrNoCrop reports that the analysis pass produced no crop candidates.
var ErrNoCrop = errors.New("crop detection produced no matching output")

// cropLine extracts the elapsed-time marker and crop expression from a
// cropdetect filter line, e.g.
// "[Parsed_cropdetect_0 @ 0x...] x1:0 ... t:5.12 crop=1920:800:0:140".
var cropLine = regexp.MustCompile(`t:\s*([0-9]+(?:\.[0-9]+)?).*?crop=(-?\d+:-?\d+:-?\d+:-?\d+)`)

// Box is a crop rectangle in ffmpeg's width:height:x:y convention.
type Box struct {
	Width  int
	Height int
	X      int
	Y      int
}

// String renders the box as a crop filter value, "1920:800:0:140".
func (b Box) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", b.Width, b.Height, b.X, b.Y)
}

// Filter renders the box as a complete ffmpeg filter expression.
func (b Box) Filter() string {
	return "crop=" + b.String()
}

// Progress is emitted for every matched line during the scan. It is a side
// channel only; emission never changes the detection result.
type Progress struct {
	Elapsed float64
	Bound   float64
	Crop    Box
}

// Detector runs the bounded cropdetect pass.
type Detector struct {
	// FFmpeg is the resolved ffmpeg binary path.
	FFmpeg string
	// ScanDuration bounds the pass in seconds of decoded content.
	ScanDuration int
	// HWAccel enables hardware-accelerated decode for the scan.
	HWAccel bool
}

// Detect scans the first ScanDuration seconds of input and returns the
// last crop rectangle ffmpeg reported. The estimate converges over the
// scan, so later matches supersede earlier ones. A source shorter than the
// bound is not an error; a scan with no matches at all is.
func (d *Detector) Detect(ctx context.Context, input string, progress func(Progress)) (Box, error) {
	proc, err := runner.Start(ctx, d.FFmpeg, d.args(input)...)
	if err != nil {
		return Box{}, err
	}
	defer proc.Close()

	bound := float64(d.ScanDuration)
	var last *Box
	for proc.Scan() {
		m := cropLine.FindStringSubmatch(proc.Line())
		if m == nil {
			continue
		}
		box, err := parseBox(m[2])
		if err != nil {
			continue
		}
		last = &box
		if progress != nil {
			elapsed, _ := strconv.ParseFloat(m[1], 64)
			progress(Progress{Elapsed: elapsed, Bound: bound, Crop: box})
		}
	}
	if err := proc.Wait(); err != nil {
		return Box{}, fmt.Errorf("crop scan: %w", err)
	}
	if last == nil {
		return Box{}, ErrNoCrop
	}
	return *last, nil
}

// args assembles the scan invocation: input-scoped flags first, then the
// input, then the bounded cropdetect pass into the discarding null muxer.
func (d *Detector) args(input string) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "info",
		"-probesize", "6000M",
		"-analyzeduration", "6000M",
	}
	if d.HWAccel {
		args = append(args, "-hwaccel", "auto")
	}
	args = append(args,
		"-i", input,
		"-vf", "cropdetect=round=2",
		"-t", strconv.Itoa(d.ScanDuration),
		"-f", "null", "-",
	)
	return args
}

func parseBox(expr string) (Box, error) {
	parts := strings.Split(expr, ":")
	if len(parts) != 4 {
		return Box{}, fmt.Errorf("crop expression %q: expected 4 fields", expr)
	}
	values := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Box{}, fmt.Errorf("crop expression %q: %w", expr, err)
		}
		values[i] = n
	}
	return Box{Width: values[0], Height: values[1], X: values[2], Y: values[3]}, nil
}
