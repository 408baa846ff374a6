package domain

import "time"

// GainerEntry is one ranked asset observation inside a snapshot.
type GainerEntry struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	GainPercent float64 `json:"gain_percent"`
}

// Snapshot is a ranked list of gainers captured at one point in time.
// Entries are ordered by GainPercent descending; symbols are unique.
type Snapshot struct {
	Entries    []GainerEntry `json:"entries"`
	CapturedAt time.Time     `json:"captured_at"`
}

// NewSnapshot copies entries so the snapshot cannot be mutated through the
// caller's slice afterwards.
func NewSnapshot(entries []GainerEntry, capturedAt time.Time) Snapshot {
	copied := make([]GainerEntry, len(entries))
	copy(copied, entries)
	return Snapshot{Entries: copied, CapturedAt: capturedAt}
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Entries) == 0
}

// Symbols returns the symbol set of the snapshot.
func (s Snapshot) Symbols() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		set[e.Symbol] = struct{}{}
	}
	return set
}

// Overlap returns the symbols present in both snapshots. Membership only:
// each symbol is unique within a snapshot, so there is nothing to count.
func Overlap(a, b Snapshot) map[string]struct{} {
	smaller, larger := a, b
	if len(b.Entries) < len(a.Entries) {
		smaller, larger = b, a
	}
	largerSet := larger.Symbols()
	out := make(map[string]struct{})
	for _, e := range smaller.Entries {
		if _, ok := largerSet[e.Symbol]; ok {
			out[e.Symbol] = struct{}{}
		}
	}
	return out
}
