package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidValue marks a manifest key whose value is out of range.
var ErrInvalidValue = errors.New("invalid value")

// Config is the decoded glsles.toml.
type Config struct {
	Scan        ScanConfig        `toml:"scan"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
	Output      OutputConfig      `toml:"output"`
}

// ScanConfig selects the shader files of directory runs.
type ScanConfig struct {
	Dirs       []string `toml:"dirs"`
	Extensions []string `toml:"extensions"`
	Jobs       int      `toml:"jobs"` // 0 - GOMAXPROCS
}

type DiagnosticsConfig struct {
	Max              int  `toml:"max"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто - XDG_CACHE_HOME/glsles
}

type OutputConfig struct {
	Format string `toml:"format"` // pretty | json | yaml
	Color  string `toml:"color"`  // auto | on | off
}

// Manifest is a loaded glsles.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string
}

// DefaultExtensions are the shader file extensions scanned when the
// manifest names none.
var DefaultExtensions = []string{".vert", ".frag", ".glsl", ".vs", ".fs"}

// Defaults returns the configuration used without a manifest.
func Defaults() Config {
	return Config{
		Scan: ScanConfig{
			Dirs:       []string{"."},
			Extensions: slices.Clone(DefaultExtensions),
		},
		Diagnostics: DiagnosticsConfig{Max: 100},
		Cache:       CacheConfig{Enabled: true},
		Output:      OutputConfig{Format: "pretty", Color: "auto"},
	}
}

// Load decodes the manifest at path on top of Defaults.
func Load(path string) (*Manifest, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m := &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}
	for _, key := range meta.Undecoded() {
		m.Undecoded = append(m.Undecoded, key.String())
	}
	return m, nil
}

// LoadFromDir finds and loads the nearest manifest above startDir.
// ok is false when there is none; the caller then uses Defaults.
func LoadFromDir(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func (c *Config) validate() error {
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("[scan].jobs must be >= 0, got %d: %w", c.Scan.Jobs, ErrInvalidValue)
	}
	for i, ext := range c.Scan.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("[scan].extensions has an empty entry: %w", ErrInvalidValue)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scan.Extensions[i] = ext
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must be >= 0, got %d: %w", c.Diagnostics.Max, ErrInvalidValue)
	}
	switch c.Output.Format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("[output].format %q (want pretty, json or yaml): %w", c.Output.Format, ErrInvalidValue)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color %q (want auto, on or off): %w", c.Output.Color, ErrInvalidValue)
	}
	return nil
}

// ScanDirs returns the scan directories resolved against the manifest root.
func (m *Manifest) ScanDirs() []string {
	out := make([]string, 0, len(m.Config.Scan.Dirs))
	for _, d := range m.Config.Scan.Dirs {
		if filepath.IsAbs(d) {
			out = append(out, d)
			continue
		}
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(d)))
	}
	return out
}
