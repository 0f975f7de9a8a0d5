package encodeplan

import (
	"fmt"
	"strings"
)

// EncoderX265 is the only encoder whose HDR metadata-embedding convention
// this tool models.
const EncoderX265 = "libx265"

// Tune selects an x265 tuning mode.
type Tune string

const (
	TuneNone      Tune = "none"
	TuneGrain     Tune = "grain"
	TuneAnimation Tune = "animation"
)

// ParseTune validates a tune name. An empty string means TuneNone.
func ParseTune(value string) (Tune, error) {
	switch Tune(strings.ToLower(strings.TrimSpace(value))) {
	case TuneNone, "":
		return TuneNone, nil
	case TuneGrain:
		return TuneGrain, nil
	case TuneAnimation:
		return TuneAnimation, nil
	default:
		return "", fmt.Errorf("tune must be none, grain, or animation, got %q", value)
	}
}

// Presets is the x265 speed ladder, fastest to slowest.
var Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// ValidPreset reports whether name is on the ladder.
func ValidPreset(name string) bool {
	for _, preset := range Presets {
		if preset == name {
			return true
		}
	}
	return false
}

// Settings are the user-supplied encoder settings merged into the final
// invocation.
type Settings struct {
	Encoder     string
	Quality     int
	Preset      string
	Tune        Tune
	PixelFormat string
	HWAccel     bool
}

// Validate checks the settings against the supported vocabulary.
func (s Settings) Validate() error {
	if s.Encoder != EncoderX265 {
		return fmt.Errorf("encoder must be %s, got %q", EncoderX265, s.Encoder)
	}
	if s.Quality < 0 || s.Quality > 51 {
		return fmt.Errorf("quality must be between 0 and 51, got %d", s.Quality)
	}
	if !ValidPreset(s.Preset) {
		return fmt.Errorf("preset must be one of %s, got %q", strings.Join(Presets, ", "), s.Preset)
	}
	if _, err := ParseTune(string(s.Tune)); err != nil {
		return err
	}
	if strings.TrimSpace(s.PixelFormat) == "" {
		return fmt.Errorf("pixel format must be set")
	}
	return nil
}
