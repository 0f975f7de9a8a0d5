package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testProbeJSON = `{
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

func writeStubScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func writeTestConfig(t *testing.T, ffmpeg, ffprobe string) string {
	t.Helper()
	base := t.TempDir()
	content := "[paths]\n" +
		"log_dir = \"" + filepath.Join(base, "logs") + "\"\n" +
		"history_db = \"" + filepath.Join(base, "history.db") + "\"\n\n" +
		"[tools]\n" +
		"ffmpeg = \"" + ffmpeg + "\"\n" +
		"ffprobe = \"" + ffprobe + "\"\n"
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIConfigInitAndShow(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	stdout, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, "Wrote sample configuration to "+target) {
		t.Fatalf("unexpected init output: %q", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init against the same path must refuse to overwrite.
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}

	stdout, _, err = runCLI(t, target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout, "Config path: "+target) {
		t.Fatalf("unexpected show output: %q", stdout)
	}
	if !strings.Contains(stdout, "encode.quality\t18") {
		t.Fatalf("expected default quality in output: %q", stdout)
	}
}

func TestCLICropCommand(t *testing.T) {
	ffmpeg := writeStubScript(t, "ffmpeg", "#!/bin/sh\n"+
		"echo '[Parsed_cropdetect_0 @ 0x1] t:1.0 crop=1920:1080:0:0' 1>&2\n"+
		"echo '[Parsed_cropdetect_0 @ 0x1] t:5.0 crop=1920:800:0:140' 1>&2\n")
	ffprobe := writeStubScript(t, "ffprobe", "#!/bin/sh\nexit 0\n")
	configPath := writeTestConfig(t, ffmpeg, ffprobe)

	stdout, _, err := runCLI(t, configPath, "crop", "/media/movie.mkv", "--scan-duration", "10")
	if err != nil {
		t.Fatalf("crop command: %v", err)
	}
	if strings.TrimSpace(stdout) != "crop=1920:800:0:140" {
		t.Fatalf("unexpected crop output: %q", stdout)
	}
}

func TestCLIProbeCommandPrintsParams(t *testing.T) {
	ffmpeg := writeStubScript(t, "ffmpeg", "#!/bin/sh\nexit 0\n")
	ffprobe := writeStubScript(t, "ffprobe", "#!/bin/sh\ncat <<'EOF'\n"+testProbeJSON+"\nEOF\n")
	configPath := writeTestConfig(t, ffmpeg, ffprobe)

	stdout, _, err := runCLI(t, configPath, "probe", "/media/movie.mkv", "--params")
	if err != nil {
		t.Fatalf("probe command: %v", err)
	}
	if !strings.Contains(stdout, "color transfer\tsmpte2084") {
		t.Fatalf("expected color transfer row, got %q", stdout)
	}
	if !strings.Contains(stdout, "master-display=G(13250,34500)B(7500,3000)R(34000,16000)WP(15635,16450)L(10000000,50)") {
		t.Fatalf("expected synthesized parameters, got %q", stdout)
	}
	if !strings.Contains(stdout, "max-cll=1000,400") {
		t.Fatalf("expected max-cll token, got %q", stdout)
	}
}

func TestCLIHistoryEmpty(t *testing.T) {
	ffmpeg := writeStubScript(t, "ffmpeg", "#!/bin/sh\nexit 0\n")
	ffprobe := writeStubScript(t, "ffprobe", "#!/bin/sh\nexit 0\n")
	configPath := writeTestConfig(t, ffmpeg, ffprobe)

	stdout, _, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history command: %v", err)
	}
	if !strings.Contains(stdout, "No encode runs recorded") {
		t.Fatalf("unexpected history output: %q", stdout)
	}
}
