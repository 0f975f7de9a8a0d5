package hdr10

import (
	"errors"
	"strconv"
	"testing"
)

func TestScaleRational(t *testing.T) {
	cases := []struct {
		raw   string
		scale int64
		want  int64
	}{
		{"35400/50000", 50000, 35400},
		{"1/1", 50000, 50000},
		{"1/1", 10000, 10000},
		{"1000/1", 10000, 10000000},
		{"50/10000", 10000, 50},
		{"1/3", 3, 1},
		{"2/3", 3, 2},
		{"1/2", 1, 1}, // rounds half away from zero
		{"0/7", 50000, 0},
	}
	for _, tc := range cases {
		got, err := ScaleRational(tc.raw, tc.scale)
		if err != nil {
			t.Fatalf("ScaleRational(%q, %d) returned error: %v", tc.raw, tc.scale, err)
		}
		if got != tc.want {
			t.Fatalf("ScaleRational(%q, %d) = %d, want %d", tc.raw, tc.scale, got, tc.want)
		}
	}
}

func TestScaleRationalWholeNumbersAreExact(t *testing.T) {
	for x := int64(0); x <= 20; x++ {
		raw := strconv.FormatInt(x, 10) + "/1"
		chroma, err := ScaleRational(raw, ChromaticityScale)
		if err != nil {
			t.Fatalf("ScaleRational(%q) returned error: %v", raw, err)
		}
		if chroma != x*ChromaticityScale {
			t.Fatalf("chromaticity scaling of %q = %d, want %d", raw, chroma, x*ChromaticityScale)
		}
		lum, err := ScaleRational(raw, LuminanceScale)
		if err != nil {
			t.Fatalf("ScaleRational(%q) returned error: %v", raw, err)
		}
		if lum != x*LuminanceScale {
			t.Fatalf("luminance scaling of %q = %d, want %d", raw, lum, x*LuminanceScale)
		}
	}
}

func TestScaleRationalRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "12", "1/0", "a/b", "1/2/3", "1.5/2", " 1/2"} {
		if _, err := ScaleRational(raw, 50000); !errors.Is(err, ErrMalformedRational) {
			t.Fatalf("ScaleRational(%q): expected ErrMalformedRational, got %v", raw, err)
		}
	}
}

func TestNormalizeMasteringDisplay(t *testing.T) {
	sd := SideData{
		Type: "Mastering display metadata",
		Fields: map[string]string{
			"red_x":         "34000/50000",
			"red_y":         "16000/50000",
			"green_x":       "13250/50000",
			"green_y":       "34500/50000",
			"blue_x":        "7500/50000",
			"blue_y":        "3000/50000",
			"white_point_x": "15635/50000",
			"white_point_y": "16450/50000",
			"min_luminance": "50/10000",
			"max_luminance": "10000000/10000",
		},
	}

	md, err := NormalizeMasteringDisplay(sd)
	if err != nil {
		t.Fatalf("NormalizeMasteringDisplay returned error: %v", err)
	}
	want := MasteringDisplay{
		RedX: 34000, RedY: 16000,
		GreenX: 13250, GreenY: 34500,
		BlueX: 7500, BlueY: 3000,
		WhiteX: 15635, WhiteY: 16450,
		MinLuminance: 50, MaxLuminance: 10000000,
	}
	if md != want {
		t.Fatalf("unexpected normalization: got %+v want %+v", md, want)
	}
}

func TestNormalizeMasteringDisplayMissingField(t *testing.T) {
	sd := SideData{Fields: map[string]string{"red_x": "1/1"}}
	_, err := NormalizeMasteringDisplay(sd)
	if !errors.Is(err, ErrMetadataMissing) {
		t.Fatalf("expected ErrMetadataMissing, got %v", err)
	}
}

func TestNormalizeMasteringDisplayMalformedField(t *testing.T) {
	fields := map[string]string{
		"red_x": "1/1", "red_y": "1/1",
		"green_x": "1/1", "green_y": "1/1",
		"blue_x": "1/1", "blue_y": "1/1",
		"white_point_x": "1/1", "white_point_y": "1/1",
		"min_luminance": "not-a-rational", "max_luminance": "1/1",
	}
	_, err := NormalizeMasteringDisplay(SideData{Fields: fields})
	if !errors.Is(err, ErrMalformedRational) {
		t.Fatalf("expected ErrMalformedRational, got %v", err)
	}
}

func TestParseContentLight(t *testing.T) {
	sd := SideData{
		Type:   "Content light level metadata",
		Fields: map[string]string{"max_content": "1000", "max_average": "400"},
	}
	cll, err := ParseContentLight(sd)
	if err != nil {
		t.Fatalf("ParseContentLight returned error: %v", err)
	}
	if cll.MaxContent != 1000 || cll.MaxAverage != 400 {
		t.Fatalf("unexpected content light values: %+v", cll)
	}
}

func TestParseContentLightMissingField(t *testing.T) {
	sd := SideData{Fields: map[string]string{"max_content": "1000"}}
	if _, err := ParseContentLight(sd); !errors.Is(err, ErrMetadataMissing) {
		t.Fatalf("expected ErrMetadataMissing, got %v", err)
	}
}
