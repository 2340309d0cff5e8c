package draft

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds in-progress drafts by ID. Drafts are per-advertiser and
// session-scoped: they live in memory and disappear on submission success,
// cancellation or process restart. Nothing partial ever reaches the database.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*Builder
}

func NewStore() *Store {
	return &Store{drafts: make(map[string]*Builder)}
}

// Create starts a new draft for the owner and returns it.
func (s *Store) Create(ownerID string) *Builder {
	b := newBuilder(uuid.NewString(), ownerID)

	s.mu.Lock()
	s.drafts[b.ID] = b
	s.mu.Unlock()

	return b
}

// Get returns the draft by ID.
func (s *Store) Get(id string) (*Builder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// Complete finalizes and removes a draft after a confirmed submission.
func (s *Store) Complete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.drafts[id]; ok {
		b.markSubmitted()
		delete(s.drafts, id)
	}
}

// Cancel discards a draft. Cancelling an unknown ID is a no-op.
func (s *Store) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}
