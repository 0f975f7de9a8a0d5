package config

const (
	defaultLogDir       = "~/.local/share/hdrpress/logs"
	defaultHistoryDB    = "~/.local/share/hdrpress/history.db"
	defaultQuality      = 18
	defaultPreset       = "slow"
	defaultTune         = "none"
	defaultPixelFormat  = "yuv420p10le"
	defaultScanDuration = 300
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Encode: Encode{
			Quality:      defaultQuality,
			Preset:       defaultPreset,
			Tune:         defaultTune,
			PixelFormat:  defaultPixelFormat,
			ScanDuration: defaultScanDuration,
			HWAccel:      true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
