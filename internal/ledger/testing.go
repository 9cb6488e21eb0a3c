package ledger

// SeedEntries is a test helper that loads entries directly into the
// in-memory store, bypassing the duplicate check.
func SeedEntries(s Store, entries ...Entry) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		for _, e := range entries {
			mem.entries[e.ID] = e
		}
	}
}
