// Package preschedule holds the pre-existing partial assignment that must
// be honored verbatim by the model: (worker, day, workplace) triples,
// possibly for workers outside the roster entirely.
package preschedule

// Entry is one preschedule triple: WorkerName staffs Workplace on Day,
// independent of whether WorkerName appears in the roster.
type Entry struct {
	WorkerName string
	Day        int
	Workplace  int
}

// Binding indexes a list of Entry values for the two lookups the model
// builder needs: pins for rostered workers (H2), and the preassigned-to-
// off-roster set that zeroes out every rostered worker for that slot (H1).
type Binding struct {
	entries []Entry

	// pinned maps (day, workplace) -> worker name, for entries whose
	// worker is on the roster.
	pinned map[[2]int]string

	// offRoster is the set of (day, workplace) slots preassigned to a
	// name that is not in the roster — spec.md §4.5 H1's "preschedule-
	// other" set.
	offRoster map[[2]int]bool
}

// New partitions entries into the pinned/off-roster sets, given the set of
// worker names present on the roster.
func New(entries []Entry, rosterNames map[string]bool) *Binding {
	b := &Binding{
		entries:   entries,
		pinned:    make(map[[2]int]string),
		offRoster: make(map[[2]int]bool),
	}
	for _, e := range entries {
		key := [2]int{e.Day, e.Workplace}
		if rosterNames[e.WorkerName] {
			b.pinned[key] = e.WorkerName
		} else {
			b.offRoster[key] = true
		}
	}
	return b
}

// Entries returns the original entry list, for verbatim reproduction in the
// output table (spec.md §5's "preschedule entries reproduced verbatim").
func (b *Binding) Entries() []Entry {
	return b.entries
}

// PinnedWorker returns the rostered worker name pinned to (day, workplace),
// and whether one exists.
func (b *Binding) PinnedWorker(day, workplace int) (string, bool) {
	name, ok := b.pinned[[2]int{day, workplace}]
	return name, ok
}

// IsOffRoster reports whether (day, workplace) is preassigned to a worker
// outside the roster, meaning no rostered worker may be assigned there.
func (b *Binding) IsOffRoster(day, workplace int) bool {
	return b.offRoster[[2]int{day, workplace}]
}

// IsPreassigned reports whether (day, workplace) is accounted for by the
// preschedule at all — pinned or off-roster. The prechecker's unconnected-
// coverage check treats such a slot as covered.
func (b *Binding) IsPreassigned(day, workplace int) bool {
	key := [2]int{day, workplace}
	if _, ok := b.pinned[key]; ok {
		return true
	}
	return b.offRoster[key]
}
