package renderengine

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Options is the engine's in-memory configuration.
type Options struct {
	FPS        int
	SkipFrames bool
	Debug      bool
	Logging    LoggingOptions
}

// LoggingOptions configures the engine console.
type LoggingOptions struct {
	Level  string // zap level name; "info" when empty
	Format string // "json" or "console"
}

// DefaultOptions returns the baseline configuration: 30 fps with catch-up
// pacing and a console logger at info level.
func DefaultOptions() Options {
	return Options{
		FPS:        30,
		SkipFrames: true,
		Logging:    LoggingOptions{Level: "info", Format: "console"},
	}
}

// optionSet is one override source in an options file. Unset fields leave
// the merged value untouched.
type optionSet struct {
	FPS        *int    `toml:"fps"`
	SkipFrames *bool   `toml:"skip_frames"`
	Debug      *bool   `toml:"debug"`
	LogLevel   *string `toml:"log_level"`
	LogFormat  *string `toml:"log_format"`
}

// optionsFile is the on-disk layout: a defaults table, per-platform tables
// keyed by GOOS, and per-version tables keyed by engine version.
type optionsFile struct {
	Defaults optionSet            `toml:"defaults"`
	Platform map[string]optionSet `toml:"platform"`
	Version  map[string]optionSet `toml:"version"`
}

// LoadOptions reads a TOML options file and merges it for the given platform
// and engine version. Merge order is a contract: defaults first, then the
// platform table, then version tables whose key the running version
// satisfies (version >= key) in ascending key order, with an exact version
// match applied last. Later, more specific sources overwrite earlier, more
// general ones.
func LoadOptions(path, platform, version string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options %s: %w", path, err)
	}
	return MergeOptions(data, platform, version)
}

// MergeOptions merges raw TOML option data for the given platform and
// engine version. See LoadOptions for the merge order.
func MergeOptions(data []byte, platform, version string) (Options, error) {
	var file optionsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}

	opts := DefaultOptions()
	opts.apply(file.Defaults)
	if set, ok := file.Platform[platform]; ok {
		opts.apply(set)
	}

	var exact bool
	keys := make([]string, 0, len(file.Version))
	for key := range file.Version {
		if key == version {
			exact = true
			continue
		}
		if compareVersions(version, key) >= 0 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return compareVersions(keys[i], keys[j]) < 0 })
	for _, key := range keys {
		opts.apply(file.Version[key])
	}
	if exact {
		opts.apply(file.Version[version])
	}

	if opts.FPS <= 0 {
		return Options{}, fmt.Errorf("options: fps must be positive, got %d", opts.FPS)
	}
	return opts, nil
}

// apply overwrites the fields that set provides.
func (o *Options) apply(set optionSet) {
	if set.FPS != nil {
		o.FPS = *set.FPS
	}
	if set.SkipFrames != nil {
		o.SkipFrames = *set.SkipFrames
	}
	if set.Debug != nil {
		o.Debug = *set.Debug
	}
	if set.LogLevel != nil {
		o.Logging.Level = *set.LogLevel
	}
	if set.LogFormat != nil {
		o.Logging.Format = *set.LogFormat
	}
}

// compareVersions compares two dotted numeric versions. Missing segments
// count as zero; non-numeric segments compare lexically.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		if sa == "" {
			sa = "0"
		}
		if sb == "" {
			sb = "0"
		}
		na, errA := strconv.Atoi(sa)
		nb, errB := strconv.Atoi(sb)
		switch {
		case errA == nil && errB == nil:
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
		default:
			if sa != sb {
				if sa < sb {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}
