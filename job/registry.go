package job

import (
	"sort"
	"sync"
)

// Registry is the ordered collection of job records for one session. The
// newest-known job sits at index 0.
//
// Records created during the session are always placed ahead of everything
// already present, regardless of timestamps. Combined with LoadAll this
// means the registry is not globally sorted once both sources mix; that
// matches the established display behavior and is pinned by tests rather
// than corrected.
type Registry struct {
	// OnChange, when set, receives a snapshot of the records after every
	// mutation. It is invoked outside the registry lock.
	OnChange func([]Record)

	mu      sync.Mutex
	records []Record
}

// Prepend places rec at the front of the registry.
func (r *Registry) Prepend(rec Record) {
	r.mu.Lock()
	r.prependLocked(rec)
	r.mu.Unlock()
	r.notify()
}

// LoadAll ingests an unordered bulk listing, intended to run once at session
// start. Records are sorted ascending by start time and prepended in that
// order, so the registry ends up most-recent-first.
func (r *Registry) LoadAll(recs []Record) {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseStartTime(sorted[i].StartTime).Before(parseStartTime(sorted[j].StartTime))
	})

	r.mu.Lock()
	for _, rec := range sorted {
		r.prependLocked(rec)
	}
	r.mu.Unlock()
	r.notify()
}

// Records returns a copy of the registry contents in display order.
func (r *Registry) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Registry) prependLocked(rec Record) {
	r.records = append([]Record{rec}, r.records...)
}

func (r *Registry) notify() {
	if r.OnChange != nil {
		r.OnChange(r.Records())
	}
}
