package availability

import "time"

// ConflictResult is the admission decision for a candidate window.
// A rejection is a normal business outcome carrying the overlapping
// reservation IDs, not an error.
type ConflictResult struct {
	Admitted  bool     `json:"admitted"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// Check collects every indexed window that overlaps the candidate. It is a
// pure function with no side effects; admitting and persisting a reservation
// are separate steps that must be serialized per venue by the caller.
//
// Back-to-back windows do not conflict under half-open semantics unless
// AdjacencyIsConflict is set.
// SnapshotHorizon is the query range to load and index before calling Check
// on candidate. Normally it is the candidate itself, but when adjacency
// counts as conflict the range is widened by one instant on each side:
// a back-to-back window only touches the candidate, and both storage range
// filters and the index's overlap filter are strict, so without the widening
// it would never reach Check at all.
func SnapshotHorizon(candidate TimeWindow, opts Options) TimeWindow {
	if !opts.AdjacencyIsConflict {
		return candidate
	}
	return TimeWindow{
		Start: candidate.Start.Add(-time.Nanosecond),
		End:   candidate.End.Add(time.Nanosecond),
	}
}

func Check(idx *Index, candidate TimeWindow, opts Options) ConflictResult {
	var conflicts []string
	for _, e := range idx.Entries {
		if e.Window.Overlaps(candidate) {
			conflicts = append(conflicts, e.ReservationID)
			continue
		}
		if opts.AdjacencyIsConflict && e.Window.Touches(candidate) {
			conflicts = append(conflicts, e.ReservationID)
		}
	}
	return ConflictResult{
		Admitted:  len(conflicts) == 0,
		Conflicts: conflicts,
	}
}
