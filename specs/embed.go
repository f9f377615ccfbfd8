package specs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml scenes/*.yaml scripts/*.tengo
var SpecsFS embed.FS

// DiskDir is checked before the embedded copies so edited files win and
// can be hot reloaded.
var DiskDir = "specs"

// Load returns the named spec file, preferring DiskDir over the embedded
// copy.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return SpecsFS.ReadFile(clean)
}

// LoadScript returns a generator script from scripts/.
func LoadScript(name string) ([]byte, error) {
	return Load(cleanScriptPath(name))
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanSpecPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskPath maps a spec name onto DiskDir.
func DiskPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}

func cleanSpecPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "specs/"); ok {
		s = after
	}
	return s
}

func cleanScriptPath(path string) string {
	s := cleanSpecPath(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return fmt.Sprintf("scripts/%s", s)
}

func cleanScenePath(path string) string {
	s := cleanSpecPath(path)
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return fmt.Sprintf("scenes/%s", s)
}
