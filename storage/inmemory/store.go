package inmemory

import "sync"

// Store is a goroutine-safe container for the most recently published
// metrics payload. It is shared between the producer side, which calls
// Update, and every request handler serving the payload.
type Store struct {
	mu      sync.Mutex
	payload []byte
}

// NewStore returns a ready-to-use Store with an empty payload. It does
// not allocate any backing storage until the first Update.
func NewStore() *Store {
	return &Store{}
}

// Update replaces the stored payload wholesale with a copy of data and
// returns the new length. The previous payload is discarded, not merged.
//
// The copy is taken before the lock is acquired, so the critical section
// is a pointer swap and producers are never stalled behind a slow reader.
func (s *Store) Update(data []byte) int {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.payload = buf
	s.mu.Unlock()

	return len(buf)
}

// Payload returns the current payload. Because every Update installs a
// fresh buffer that is never mutated after publication, callers may read
// the returned slice without copying and without holding the lock. They
// must not modify it.
func (s *Store) Payload() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload
}
