// Package hdr10 probes a video file's HDR side data and normalizes it into
// the scaled-integer convention x265's mastering-display syntax expects.
package hdr10

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hdrpress/internal/media/runner"
)

// ErrMetadataMissing reports that a required side-data entry or field is
// absent from the probed frame.
var ErrMetadataMissing = errors.New("required HDR metadata missing")

// Type-label substrings used to select side-data entries. ffprobe reports
// "Mastering display metadata" and "Content light level metadata".
const (
	MasteringDisplayLabel = "display metadata"
	ContentLightLabel     = "light level metadata"
)

// Probe issues single-frame metadata queries through ffprobe.
type Probe struct {
	// FFprobe is the resolved ffprobe binary path.
	FFprobe string
}

// Inspect queries the first video frame of input for color tags, pixel
// format, and the side-data list.
func (p *Probe) Inspect(ctx context.Context, input string) (*FrameMetadata, error) {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-select_streams", "v:0",
		"-read_intervals", "%+#1",
		"-show_entries", "frame=color_space,color_primaries,color_transfer,pix_fmt,side_data_list",
		"-print_format", "json",
		input,
	}

	proc, err := runner.Start(ctx, p.FFprobe, args...)
	if err != nil {
		return nil, err
	}
	defer proc.Close()

	var out bytes.Buffer
	for proc.Scan() {
		out.WriteString(proc.Line())
		out.WriteByte('\n')
	}
	if err := proc.Wait(); err != nil {
		return nil, fmt.Errorf("probe %s: %w", input, err)
	}

	return ParseFrameJSON(out.Bytes())
}

// ParseFrameJSON converts a single-frame ffprobe JSON document into a
// FrameMetadata. Exported for testing without a real ffprobe binary.
func ParseFrameJSON(data []byte) (*FrameMetadata, error) {
	var doc frameDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse probe JSON: %w", err)
	}
	// Single-frame queries nest the frame record under "frames" with
	// exactly one element.
	if len(doc.Frames) != 1 {
		return nil, fmt.Errorf("%w: expected 1 probed frame, got %d", ErrMetadataMissing, len(doc.Frames))
	}
	return doc.Frames[0].toFrameMetadata(), nil
}

// --- ffprobe JSON wire types ---

type frameDocument struct {
	Frames []frameRecord `json:"frames"`
}

type frameRecord struct {
	ColorSpace     string           `json:"color_space"`
	ColorPrimaries string           `json:"color_primaries"`
	ColorTransfer  string           `json:"color_transfer"`
	PixFmt         string           `json:"pix_fmt"`
	SideDataList   []map[string]any `json:"side_data_list"`
}

func (f frameRecord) toFrameMetadata() *FrameMetadata {
	meta := &FrameMetadata{
		ColorSpace:     f.ColorSpace,
		ColorPrimaries: f.ColorPrimaries,
		ColorTransfer:  f.ColorTransfer,
		PixelFormat:    f.PixFmt,
	}
	for _, entry := range f.SideDataList {
		sd := SideData{Fields: make(map[string]string, len(entry))}
		for key, value := range entry {
			if key == "side_data_type" {
				sd.Type = rawString(value)
				continue
			}
			sd.Fields[key] = rawString(value)
		}
		meta.SideData = append(meta.SideData, sd)
	}
	return meta
}

// rawString keeps wire values in their textual form: rational strings stay
// as-is, numbers render without float formatting artifacts.
func rawString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
