package hdr10

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Scale factors for the x265 mastering-display convention.
const (
	// ChromaticityScale converts chromaticity and white-point coordinates
	// to 1/50000 units.
	ChromaticityScale = 50000
	// LuminanceScale converts min/max luminance to 1/10000 units.
	LuminanceScale = 10000
)

// ErrMalformedRational reports a field that is not a dividend/divisor pair
// or has a zero divisor.
var ErrMalformedRational = errors.New("malformed rational")

var rationalPattern = regexp.MustCompile(`^(-?\d+)/(-?\d+)$`)

// ScaleRational parses raw as "dividend/divisor" and rescales it to the
// fixed-point integer round(dividend*scale/divisor).
func ScaleRational(raw string, scale int64) (int64, error) {
	m := rationalPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedRational, raw)
	}
	dividend, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedRational, raw, err)
	}
	divisor, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedRational, raw, err)
	}
	if divisor == 0 {
		return 0, fmt.Errorf("%w: %q: zero divisor", ErrMalformedRational, raw)
	}
	return int64(math.Round(float64(dividend) * float64(scale) / float64(divisor))), nil
}

// NormalizeMasteringDisplay rescales the rational fields of a
// mastering-display side-data entry into the x265 fixed-point convention.
// A missing field is MetadataMissing; an unparsable one is
// MalformedRational.
func NormalizeMasteringDisplay(sd SideData) (MasteringDisplay, error) {
	var md MasteringDisplay
	fields := []struct {
		name  string
		scale int64
		dst   *int64
	}{
		{"red_x", ChromaticityScale, &md.RedX},
		{"red_y", ChromaticityScale, &md.RedY},
		{"green_x", ChromaticityScale, &md.GreenX},
		{"green_y", ChromaticityScale, &md.GreenY},
		{"blue_x", ChromaticityScale, &md.BlueX},
		{"blue_y", ChromaticityScale, &md.BlueY},
		{"white_point_x", ChromaticityScale, &md.WhiteX},
		{"white_point_y", ChromaticityScale, &md.WhiteY},
		{"min_luminance", LuminanceScale, &md.MinLuminance},
		{"max_luminance", LuminanceScale, &md.MaxLuminance},
	}
	for _, field := range fields {
		raw, ok := sd.Field(field.name)
		if !ok {
			return MasteringDisplay{}, fmt.Errorf("%w: mastering display field %s", ErrMetadataMissing, field.name)
		}
		value, err := ScaleRational(raw, field.scale)
		if err != nil {
			return MasteringDisplay{}, fmt.Errorf("mastering display field %s: %w", field.name, err)
		}
		*field.dst = value
	}
	return md, nil
}

// ParseContentLight reads the integer fields of a content-light-level
// side-data entry. The side-data key is max_average and the parsed field
// keeps that name; no rename happens anywhere downstream.
func ParseContentLight(sd SideData) (ContentLightLevel, error) {
	var cll ContentLightLevel
	fields := []struct {
		name string
		dst  *int
	}{
		{"max_content", &cll.MaxContent},
		{"max_average", &cll.MaxAverage},
	}
	for _, field := range fields {
		raw, ok := sd.Field(field.name)
		if !ok {
			return ContentLightLevel{}, fmt.Errorf("%w: content light field %s", ErrMetadataMissing, field.name)
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return ContentLightLevel{}, fmt.Errorf("content light field %s: %q: %w", field.name, raw, err)
		}
		*field.dst = value
	}
	return cll, nil
}
