package fontload

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultFontSize is the base font size in pixels.
const DefaultFontSize = 14

// Config selects which fonts Load looks for and where.
type Config struct {
	// Families are font family names in order of preference.
	Families []string

	// Size is the base font size in pixels. Load does not use it; it is
	// carried for glyphatlas.New.
	Size float32

	// Dirs are searched in order. Fonts found in earlier directories win
	// over fonts with the same family and style in later ones.
	Dirs []string
}

// DefaultConfig returns the default font configuration: a list of popular
// programming fonts, 14px, and DefaultDirs.
func DefaultConfig() Config {
	return Config{
		Families: []string{
			"MesloLGS NF",
			"JetBrains Mono",
			"Fira Code",
			"SF Mono",
			"Menlo",
		},
		Size: DefaultFontSize,
		Dirs: DefaultDirs(),
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if len(c.Families) == 0 {
		return errors.New("fontload: at least one font family is required")
	}
	for i, f := range c.Families {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("fontload: family %d is empty", i)
		}
	}
	if math.IsNaN(float64(c.Size)) || math.IsInf(float64(c.Size), 0) || c.Size <= 0 {
		return fmt.Errorf("fontload: invalid font size %v", c.Size)
	}
	if len(c.Dirs) == 0 {
		return errors.New("fontload: no font directories configured")
	}
	return nil
}

// DefaultDirs returns the font directories for the current platform.
// The per-user glyphatlas font directory comes first.
func DefaultDirs() []string {
	var dirs []string
	if cfg, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(cfg, "glyphatlas", "fonts"))
	}
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "darwin":
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts")
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
	default:
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".local", "share", "fonts"),
				filepath.Join(home, ".fonts"),
			)
		}
		dirs = append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
	return dirs
}
