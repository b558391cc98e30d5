package world

import "fmt"

// InvalidWarpIndexError is returned when a warp shape refers to an index
// outside the map's warp list.
type InvalidWarpIndexError struct {
	MapID int
	Index int
	Count int
}

func (e *InvalidWarpIndexError) Error() string {
	return fmt.Sprintf("map %d: warp index %d out of range (map has %d warps)", e.MapID, e.Index, e.Count)
}
