package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

//go:embed *.yaml shapes/*.yaml scripts/*.tengo
var FS embed.FS

// DiskRoot is checked before the embedded copies, relative to the working
// directory, so edits show up without a rebuild.
const DiskRoot = "prefabs"

// Asset subdirectories. Entity prefabs live at the root.
const (
	EntityDir = ""
	ShapeDir  = "shapes"
	ScriptDir = "scripts"
)

// Load reads an entity prefab or physics.yaml.
func Load(name string) ([]byte, error) {
	return readAsset(EntityDir, name)
}

// LoadScript reads a driver script from scripts/.
func LoadScript(name string) ([]byte, error) {
	return readAsset(ScriptDir, name)
}

func loadShape(name string) ([]byte, error) {
	return readAsset(ShapeDir, name)
}

// List returns the embedded asset names in dir matching ext, sorted.
func List(dir, ext string) ([]string, error) {
	pattern := "*" + ext
	if dir != "" {
		pattern = dir + "/" + pattern
	}
	names, err := fs.Glob(FS, pattern)
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		names[i] = strings.TrimPrefix(name, dir+"/")
	}
	slices.Sort(names)
	return names, nil
}

// ModTime reports when the on-disk override of an asset last changed.
func ModTime(dir, name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(assetPath(dir, name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readAsset(dir, name string) ([]byte, error) {
	p := assetPath(dir, name)
	if data, err := os.ReadFile(diskPath(p)); err == nil {
		return data, nil
	}
	return FS.ReadFile(p)
}

// assetPath accepts "x", "dir/x" and "prefabs/dir/x" and returns "dir/x".
func assetPath(dir, name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, DiskRoot+"/")
	if dir != "" {
		s = strings.TrimPrefix(s, dir+"/")
	}
	return path.Join(dir, s)
}

func diskPath(p string) string {
	return filepath.Join(DiskRoot, filepath.FromSlash(p))
}
