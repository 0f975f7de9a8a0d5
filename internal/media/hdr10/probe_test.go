package hdr10

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleFrameJSON = `{
    "frames": [
        {
            "pix_fmt": "yuv420p10le",
            "color_space": "bt2020nc",
            "color_primaries": "bt2020",
            "color_transfer": "smpte2084",
            "side_data_list": [
                {
                    "side_data_type": "Mastering display metadata",
                    "red_x": "34000/50000",
                    "red_y": "16000/50000",
                    "green_x": "13250/50000",
                    "green_y": "34500/50000",
                    "blue_x": "7500/50000",
                    "blue_y": "3000/50000",
                    "white_point_x": "15635/50000",
                    "white_point_y": "16450/50000",
                    "min_luminance": "50/10000",
                    "max_luminance": "10000000/10000"
                },
                {
                    "side_data_type": "Content light level metadata",
                    "max_content": 1000,
                    "max_average": 400
                }
            ]
        }
    ]
}`

func TestParseFrameJSON(t *testing.T) {
	meta, err := ParseFrameJSON([]byte(sampleFrameJSON))
	if err != nil {
		t.Fatalf("ParseFrameJSON returned error: %v", err)
	}

	if meta.ColorSpace != "bt2020nc" || meta.ColorPrimaries != "bt2020" || meta.ColorTransfer != "smpte2084" {
		t.Fatalf("unexpected color tags: %+v", meta)
	}
	if meta.PixelFormat != "yuv420p10le" {
		t.Fatalf("unexpected pixel format: %q", meta.PixelFormat)
	}
	if len(meta.SideData) != 2 {
		t.Fatalf("expected 2 side data entries, got %d", len(meta.SideData))
	}

	display, ok := meta.SideDataContaining(MasteringDisplayLabel)
	if !ok {
		t.Fatal("expected mastering display side data")
	}
	if raw, _ := display.Field("red_x"); raw != "34000/50000" {
		t.Fatalf("expected raw rational preserved, got %q", raw)
	}

	light, ok := meta.SideDataContaining(ContentLightLabel)
	if !ok {
		t.Fatal("expected content light side data")
	}
	// Integers must keep their exact textual form.
	if raw, _ := light.Field("max_content"); raw != "1000" {
		t.Fatalf("expected integer preserved, got %q", raw)
	}
	if raw, _ := light.Field("max_average"); raw != "400" {
		t.Fatalf("expected max_average preserved, got %q", raw)
	}
}

func TestParseFrameJSONRequiresSingleFrame(t *testing.T) {
	_, err := ParseFrameJSON([]byte(`{"frames": []}`))
	if !errors.Is(err, ErrMetadataMissing) {
		t.Fatalf("expected ErrMetadataMissing for empty frames, got %v", err)
	}

	_, err = ParseFrameJSON([]byte(`{"frames": [{}, {}]}`))
	if !errors.Is(err, ErrMetadataMissing) {
		t.Fatalf("expected ErrMetadataMissing for multiple frames, got %v", err)
	}
}

func TestParseFrameJSONRejectsGarbage(t *testing.T) {
	if _, err := ParseFrameJSON([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSideDataSelectionOrder(t *testing.T) {
	meta := &FrameMetadata{SideData: []SideData{
		{Type: "HDR Dynamic Metadata SMPTE2094-40 (HDR10+)"},
		{Type: "Mastering display metadata", Fields: map[string]string{"red_x": "first"}},
		{Type: "Mastering display metadata", Fields: map[string]string{"red_x": "second"}},
	}}

	sd, ok := meta.SideDataContaining(MasteringDisplayLabel)
	if !ok {
		t.Fatal("expected a match")
	}
	if raw, _ := sd.Field("red_x"); raw != "first" {
		t.Fatalf("expected first matching entry, got %q", raw)
	}

	if _, ok := meta.SideDataContaining(ContentLightLabel); ok {
		t.Fatal("expected no content light entry")
	}
}

func TestInspectParsesStubOutput(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "frame.json")
	if err := os.WriteFile(jsonPath, []byte(sampleFrameJSON), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	stub := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\ncat "+jsonPath+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	probe := &Probe{FFprobe: stub}
	meta, err := probe.Inspect(context.Background(), "/media/movie.mkv")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if meta.ColorTransfer != "smpte2084" {
		t.Fatalf("unexpected transfer tag: %q", meta.ColorTransfer)
	}
}

func TestInspectSurfacesProbeFailure(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho boom 1>&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	probe := &Probe{FFprobe: stub}
	if _, err := probe.Inspect(context.Background(), "in.mkv"); err == nil {
		t.Fatal("expected error from failing probe")
	}
}
