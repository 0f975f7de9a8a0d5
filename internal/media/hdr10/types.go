package hdr10

import "strings"

// SideData is one auxiliary metadata entry attached to a probed frame: a
// type label plus the raw field values ffprobe reported. Values stay in
// their wire form (rational-fraction strings or integers rendered as
// strings) until normalization.
type SideData struct {
	Type   string
	Fields map[string]string
}

// Field returns the raw value for name.
func (s SideData) Field(name string) (string, bool) {
	value, ok := s.Fields[name]
	return value, ok
}

// FrameMetadata is one probed frame's worth of information. The color tags
// are opaque strings passed through uninterpreted; unrecognized values are
// the encoder's problem, not ours.
type FrameMetadata struct {
	ColorSpace     string
	ColorPrimaries string
	ColorTransfer  string
	PixelFormat    string
	SideData       []SideData
}

// SideDataContaining returns the first side-data entry whose type label
// contains label.
func (f *FrameMetadata) SideDataContaining(label string) (SideData, bool) {
	for _, sd := range f.SideData {
		if strings.Contains(sd.Type, label) {
			return sd, true
		}
	}
	return SideData{}, false
}

// MasteringDisplay holds the HDR color volume after normalization:
// chromaticity coordinates in 1/50000 units and luminance in 1/10000
// units, the scaled-integer convention x265's master-display syntax
// expects.
type MasteringDisplay struct {
	RedX         int64
	RedY         int64
	GreenX       int64
	GreenY       int64
	BlueX        int64
	BlueY        int64
	WhiteX       int64
	WhiteY       int64
	MinLuminance int64
	MaxLuminance int64
}

// ContentLightLevel holds per-title peak and average brightness in nits.
type ContentLightLevel struct {
	MaxContent int
	MaxAverage int
}
