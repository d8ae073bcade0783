package hybrid

import "sync"

// Registry is the in-memory store mapping tab identifiers to native window
// records. It has no persistence; teardown clears it entirely.
type Registry struct {
	mu      sync.RWMutex
	records map[string]WindowRecord
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]WindowRecord)}
}

// Get returns the record for tabID, if present.
func (r *Registry) Get(tabID string) (WindowRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[tabID]
	return rec, ok
}

// Set stores rec, keyed by its TabID, replacing any previous record.
func (r *Registry) Set(rec WindowRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.TabID] = rec
}

// Remove drops the record for tabID. Removing an absent tab is a no-op.
func (r *Registry) Remove(tabID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, tabID)
}

// Has reports whether a record exists for tabID.
func (r *Registry) Has(tabID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[tabID]
	return ok
}

// Len returns the number of tracked windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// TabIDs returns a snapshot of the tracked tab identifiers.
func (r *Registry) TabIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	return ids
}

// Records returns a snapshot of all tracked window records.
func (r *Registry) Records() []WindowRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]WindowRecord, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	return recs
}

// Clear removes every record.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]WindowRecord)
}
