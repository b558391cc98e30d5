package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/littleman/internal/game"
	"github.com/vovakirdan/littleman/internal/storage"
)

// journal records one play session in the store. Writes are best effort:
// failures are logged and play goes on. A nil store disables it.
type journal struct {
	store     *storage.Store
	log       *log.Logger
	sessionID string
	ended     bool
}

func startJournal(store *storage.Store, player string, startMap int, logger *log.Logger) *journal {
	j := &journal{store: store, log: logger}
	if store == nil {
		return j
	}
	id, err := store.StartSession(player, startMap)
	if err != nil {
		logger.Warn("could not start journal session", "err", err)
		return j
	}
	j.sessionID = id
	logger.Debug("journal session started", "session", id, "player", player, "map", startMap)
	return j
}

func (j *journal) active() bool {
	return j != nil && j.sessionID != "" && !j.ended
}

// visit records the maps entered during one tick.
func (j *journal) visit(maps []int) {
	if !j.active() {
		return
	}
	for _, id := range maps {
		if err := j.store.RecordVisit(j.sessionID, id); err != nil {
			j.log.Warn("could not record map visit", "map", id, "err", err)
		}
	}
}

// end closes the session with the game counters. Only the first call writes.
func (j *journal) end(stats game.Stats) {
	if !j.active() {
		return
	}
	j.ended = true
	err := j.store.EndSession(j.sessionID, storage.Counters{
		Ticks:    stats.Ticks,
		Moves:    stats.Moves,
		Warps:    stats.Warps,
		Failures: stats.Failures,
		Respawns: stats.Respawns,
	})
	if err != nil {
		j.log.Warn("could not end journal session", "session", j.sessionID, "err", err)
	}
}
