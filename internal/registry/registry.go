// Package registry provides a global registry for level file formats.
// Formats register themselves in init() functions, allowing the loader and
// the CLI to discover codecs by name or file extension without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/littleman/internal/world"
)

// Format is a level file codec.
// Codecs are pure: they never touch the filesystem.
type Format interface {
	// Name returns a unique identifier for this format (e.g., "text", "yaml").
	// Used for CLI flags and error messages.
	Name() string

	// Extensions returns the file extensions handled by this format,
	// lower-case and including the dot. The first one is used when writing.
	Extensions() []string

	// Decode parses a level file. The id is the map number taken from the
	// file name; formats that store it inline must agree with it.
	Decode(id int, data []byte) (*world.Map, error)

	// Encode writes a map in this format.
	Encode(m *world.Map) ([]byte, error)
}

// FormatInfo contains metadata about a registered format.
type FormatInfo struct {
	Name       string
	Extensions []string
}

var (
	formats = make(map[string]Format)
	byExt   = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a format to the registry.
// Typically called from a codec's init() function.
// Panics if a format with the same name or a claimed extension is already registered.
func Register(f Format) {
	mu.Lock()
	defer mu.Unlock()

	name := f.Name()
	if _, exists := formats[name]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", name))
	}
	for _, ext := range f.Extensions() {
		if owner, taken := byExt[ext]; taken {
			panic(fmt.Sprintf("registry: extension %q already claimed by %q", ext, owner))
		}
	}

	formats[name] = f
	for _, ext := range f.Extensions() {
		byExt[ext] = name
	}
}

// List returns information about all registered formats, sorted by name.
func List() []FormatInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FormatInfo, 0, len(formats))
	for name, f := range formats {
		result = append(result, FormatInfo{
			Name:       name,
			Extensions: append([]string(nil), f.Extensions()...),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns a format by its name.
// Returns an error if the name is not registered.
func Get(name string) (Format, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown format %q", name)
	}

	return f, nil
}

// ForExtension returns the format owning ext. The match ignores case and
// accepts the extension with or without the leading dot.
func ForExtension(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	mu.RLock()
	defer mu.RUnlock()

	name, ok := byExt[ext]
	if !ok {
		return nil, false
	}
	return formats[name], true
}

// Extensions returns every registered extension in format order.
func Extensions() []string {
	var out []string
	for _, info := range List() {
		out = append(out, info.Extensions...)
	}
	return out
}

// Exists checks if a format with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := formats[name]
	return ok
}
