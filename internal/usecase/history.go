package usecase

import (
	"bloodlink-service/internal/domain/entity"
)

// AppendHistory appends entry to the end of history and evicts entries
// from the front until at most limit remain. The input slice is not
// mutated. Entries, once appended, are never reordered.
func AppendHistory(history []entity.StatusEntry, entry entity.StatusEntry, limit int) []entity.StatusEntry {
	if entry.ChangedBy == (entity.Actor{}) {
		entry.ChangedBy = entity.SystemActor()
	}

	out := make([]entity.StatusEntry, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, entry)

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
