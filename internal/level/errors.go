package level

import (
	"fmt"
	"strings"
)

// ParseError reports malformed level file content. Line is 1-based; zero
// means the position is unknown.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// MapLoadError is returned when a map cannot be read, decoded or validated.
type MapLoadError struct {
	MapID int
	Path  string
	Err   error
}

func (e *MapLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("level: load map %d (%s): %v", e.MapID, e.Path, e.Err)
	}
	return fmt.Sprintf("level: load map %d: %v", e.MapID, e.Err)
}

func (e *MapLoadError) Unwrap() error { return e.Err }

// ValidationError collects the error-severity issues that stopped a map from loading.
type ValidationError struct {
	MapID  int
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Message
	}
	return fmt.Sprintf("map %d is invalid: %s", e.MapID, strings.Join(msgs, "; "))
}

// Unwrap exposes the typed causes, such as *world.InvalidWarpIndexError.
func (e *ValidationError) Unwrap() []error {
	var out []error
	for _, is := range e.Issues {
		if is.Err != nil {
			out = append(out, is.Err)
		}
	}
	return out
}
