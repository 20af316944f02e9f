package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Errors returned by Loader.LoadAll.
var (
	ErrLevelDir = errors.New("levels: level directory not found")
	ErrNoLevels = errors.New("levels: no level files found")
)

//go:embed defaults/*.txt defaults/*.yaml
var defaultFS embed.FS

// Level is a named puzzle ready for play.
type Level struct {
	ID       string
	Name     string
	Puzzle   Puzzle
	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader reads every level file in a directory.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root}
}

// Default returns the built-in level set.
func Default() ([]Level, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("levels: embedded defaults: %w", err)
	}
	return NewFSLoader(sub, "defaults").LoadAll()
}

// LoadAll loads every supported file in the directory (not recursive).
// Levels are sorted by ID. A single malformed file fails the whole load.
func (l *Loader) LoadAll() ([]Level, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLevelDir, l.root)
		}
		return nil, fmt.Errorf("levels: reading directory %s: %w", l.root, err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		lvl, err := l.LoadFile(e.Name())
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLevels, l.root)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
func (l *Loader) LoadFile(name string) (Level, error) {
	full := filepath.Join(l.root, name)

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", full, err)
	}

	ext := strings.ToLower(path.Ext(name))
	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))

	var lvl Level
	switch ext {
	case ".yaml", ".yml":
		lvl, err = ParseYAML(data)
	default:
		var p Puzzle
		p, err = ParseText(data)
		lvl = Level{Puzzle: p}
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = full
			return Level{}, pe
		}
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", full, err)
	}

	if lvl.ID == "" {
		lvl.ID = stem
	}
	lvl.FilePath = full
	return lvl, nil
}

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// FormatExtensions returns the supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".lvl", ".yaml", ".yml"}
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
