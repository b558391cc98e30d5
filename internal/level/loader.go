// Package level reads and writes level files and serves maps to the
// physics engine by id.
package level

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/littleman/internal/registry"
	"github.com/vovakirdan/littleman/internal/world"
)

// DefaultStartMap is the map a new game starts on.
const DefaultStartMap = 4

//go:embed maps/*.txt
var builtinFS embed.FS

// Loader reads maps named "<id><ext>" from a filesystem and caches them.
// Maps are immutable, so a cached *world.Map is shared freely.
// It is safe for concurrent use.
type Loader struct {
	fsys fs.FS
	log  *log.Logger

	mu    sync.Mutex
	cache map[int]*world.Map
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{fsys: fsys, log: logger, cache: make(map[int]*world.Map)}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string, logger *log.Logger) *Loader {
	return NewLoader(os.DirFS(dir), logger)
}

// Builtin returns a loader over the maps shipped with the binary.
func Builtin(logger *log.Logger) *Loader {
	sub, err := fs.Sub(builtinFS, "maps")
	if err != nil {
		panic(fmt.Sprintf("level: embedded maps: %v", err))
	}
	return NewLoader(sub, logger)
}

// Load returns map id, reading and validating it on first use.
// Failures are *MapLoadError values.
func (l *Loader) Load(id int) (*world.Map, error) {
	l.mu.Lock()
	m, ok := l.cache[id]
	l.mu.Unlock()
	if ok {
		return m, nil
	}

	m, err := l.read(id)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[id] = m
	l.mu.Unlock()
	return m, nil
}

// Reload drops any cached copy of map id and reads it again.
func (l *Loader) Reload(id int) (*world.Map, error) {
	l.Invalidate(id)
	return l.Load(id)
}

// Invalidate drops the cached copy of map id.
func (l *Loader) Invalidate(id int) {
	l.mu.Lock()
	delete(l.cache, id)
	l.mu.Unlock()
}

func (l *Loader) read(id int) (*world.Map, error) {
	name, f, err := l.find(id)
	if err != nil {
		return nil, &MapLoadError{MapID: id, Err: err}
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, &MapLoadError{MapID: id, Path: name, Err: err}
	}

	m, err := f.Decode(id, data)
	if err != nil {
		return nil, &MapLoadError{MapID: id, Path: name, Err: err}
	}

	issues := Validate(m)
	for _, is := range issues {
		if is.Severity == SeverityWarning {
			l.log.Warn("map issue", "map", id, "code", is.Code, "msg", is.Message)
		}
	}
	if errs := Errors(issues); len(errs) > 0 {
		return nil, &MapLoadError{MapID: id, Path: name, Err: &ValidationError{MapID: id, Issues: errs}}
	}

	l.log.Debug("map loaded", "map", id, "file", name, "shapes", m.ShapeCount(), "warps", m.WarpCount())
	return m, nil
}

// find picks the file for id, trying registered formats in name order.
// Other files for the same id are ignored with a warning.
func (l *Loader) find(id int) (string, registry.Format, error) {
	var (
		name    string
		format  registry.Format
		shadows []string
	)
	for _, ext := range registry.Extensions() {
		candidate := strconv.Itoa(id) + ext
		if _, err := fs.Stat(l.fsys, candidate); err != nil {
			continue
		}
		if format != nil {
			shadows = append(shadows, candidate)
			continue
		}
		name = candidate
		format, _ = registry.ForExtension(ext)
	}
	if format == nil {
		return "", nil, fmt.Errorf("no level file for map %d: %w", id, fs.ErrNotExist)
	}
	if len(shadows) > 0 {
		l.log.Warn("several files for one map", "map", id, "using", name, "ignored", strings.Join(shadows, ","))
	}
	return name, format, nil
}

// ListIDs returns the ids of all level files, sorted.
func (l *Loader) ListIDs() ([]int, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("level: list maps: %w", err)
	}

	seen := make(map[int]bool)
	var ids []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := IDFromName(e.Name())
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// LoadAll loads every listed map. Maps that fail are skipped and their
// errors joined.
func (l *Loader) LoadAll() ([]*world.Map, error) {
	ids, err := l.ListIDs()
	if err != nil {
		return nil, err
	}
	var (
		maps []*world.Map
		errs []error
	)
	for _, id := range ids {
		m, err := l.Load(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		maps = append(maps, m)
	}
	return maps, errors.Join(errs...)
}

// Check validates every map and its references to other maps.
// Load failures are reported as error issues.
func (l *Loader) Check() ([]Issue, error) {
	ids, err := l.ListIDs()
	if err != nil {
		return nil, err
	}
	var out []Issue
	for _, id := range ids {
		// Read directly so warnings are returned instead of logged.
		name, f, err := l.find(id)
		if err != nil {
			out = append(out, loadIssue(id, err))
			continue
		}
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			out = append(out, loadIssue(id, err))
			continue
		}
		m, err := f.Decode(id, data)
		if err != nil {
			out = append(out, loadIssue(id, &MapLoadError{MapID: id, Path: name, Err: err}))
			continue
		}
		out = append(out, Validate(m)...)
		out = append(out, CheckRefs(m, l.Load)...)
	}
	return out, nil
}

func loadIssue(id int, err error) Issue {
	return Issue{MapID: id, Severity: SeverityError, Code: "load", Message: err.Error(), Err: err}
}

// IDFromName extracts the map id from a level file name such as "4.txt".
// Names with unregistered extensions or non-numeric stems are rejected.
func IDFromName(name string) (int, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := path.Ext(base)
	if _, ok := registry.ForExtension(ext); !ok {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(base, ext))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
