package renderengine

import (
	"os"
	"path/filepath"
	"testing"
)

const optionsTOML = `
[defaults]
fps = 25
skip_frames = true
log_level = "info"

[platform.linux]
fps = 30

[platform.js]
fps = 20
skip_frames = false

[version."2.0"]
log_level = "warn"

[version."2.1"]
fps = 40

[version."2.1.0"]
debug = true

[version."3.0"]
fps = 120
`

func TestMergeOptionsOrder(t *testing.T) {
	opts, err := MergeOptions([]byte(optionsTOML), "linux", "2.1.0")
	if err != nil {
		t.Fatal(err)
	}

	// platform table overrides defaults; version "2.1" (>= threshold)
	// overrides the platform value; exact "2.1.0" applies last; "3.0" is
	// beyond the running version and never applies.
	if opts.FPS != 40 {
		t.Errorf("FPS = %d, want 40", opts.FPS)
	}
	if !opts.Debug {
		t.Error("exact version override not applied")
	}
	if opts.Logging.Level != "warn" {
		t.Errorf("log level = %q, want %q", opts.Logging.Level, "warn")
	}
	if !opts.SkipFrames {
		t.Error("default skip_frames lost in merge")
	}
}

func TestMergeOptionsPlatformSpecific(t *testing.T) {
	opts, err := MergeOptions([]byte(optionsTOML), "js", "1.0")
	if err != nil {
		t.Fatal(err)
	}
	if opts.FPS != 20 {
		t.Errorf("FPS = %d, want 20", opts.FPS)
	}
	if opts.SkipFrames {
		t.Error("platform skip_frames override not applied")
	}
	// No version table matches a 1.0 engine.
	if opts.Logging.Level != "info" {
		t.Errorf("log level = %q, want %q", opts.Logging.Level, "info")
	}
}

func TestMergeOptionsUnknownPlatformFallsBack(t *testing.T) {
	opts, err := MergeOptions([]byte(optionsTOML), "plan9", "1.0")
	if err != nil {
		t.Fatal(err)
	}
	if opts.FPS != 25 {
		t.Errorf("FPS = %d, want defaults 25", opts.FPS)
	}
}

func TestMergeOptionsAscendingVersionOrder(t *testing.T) {
	data := []byte(`
[version."1.2"]
fps = 50

[version."1.10"]
fps = 90
`)
	// Numeric segment comparison: 1.10 sorts after 1.2 and wins.
	opts, err := MergeOptions(data, "linux", "2.0")
	if err != nil {
		t.Fatal(err)
	}
	if opts.FPS != 90 {
		t.Errorf("FPS = %d, want 90 (ascending version merge)", opts.FPS)
	}
}

func TestMergeOptionsRejectsBadFPS(t *testing.T) {
	if _, err := MergeOptions([]byte("[defaults]\nfps = 0\n"), "linux", "2.0"); err == nil {
		t.Error("zero fps accepted")
	}
	if _, err := MergeOptions([]byte("[defaults]\nfps = -5\n"), "linux", "2.0"); err == nil {
		t.Error("negative fps accepted")
	}
}

func TestMergeOptionsBadTOML(t *testing.T) {
	if _, err := MergeOptions([]byte("not toml ["), "linux", "2.0"); err == nil {
		t.Error("malformed TOML accepted")
	}
}

func TestLoadOptionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(optionsTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path, "linux", Version)
	if err != nil {
		t.Fatal(err)
	}
	if opts.FPS != 40 {
		t.Errorf("FPS = %d, want 40", opts.FPS)
	}

	if _, err := LoadOptions(filepath.Join(t.TempDir(), "missing.toml"), "linux", Version); err == nil {
		t.Error("missing file accepted")
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2.1.0", "2.1.0", 0},
		{"2.1", "2.1.0", 0},
		{"2.10", "2.2", 1},
		{"2.0", "2.1", -1},
		{"3", "2.9.9", 1},
	}
	for _, tt := range tests {
		if got := compareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
