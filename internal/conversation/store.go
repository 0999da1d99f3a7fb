package conversation

import (
	"context"
	"errors"
	"sync"
)

// ErrConversationNotFound indicates no state is stored under the id.
var ErrConversationNotFound = errors.New("conversation: conversation not found")

// StateStore persists conversation state between turns. The engine itself is
// stateless; the HTTP layer owns the load → process → save lifecycle, and
// Delete is the caller-owned reset.
type StateStore interface {
	Load(ctx context.Context, conversationID string) (*State, error)
	Save(ctx context.Context, conversationID string, st *State) error
	Delete(ctx context.Context, conversationID string) error
}

// InMemoryStateStore keeps conversations in a map, for tests and
// single-process deployments.
type InMemoryStateStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewInMemoryStateStore creates an empty store.
func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{states: make(map[string]*State)}
}

// Load returns a deep copy of the stored state.
func (s *InMemoryStateStore) Load(ctx context.Context, conversationID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return st.Clone(), nil
}

// Save stores a deep copy of the state.
func (s *InMemoryStateStore) Save(ctx context.Context, conversationID string, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[conversationID] = st.Clone()
	return nil
}

// Delete removes the conversation. Deleting an unknown id is a no-op.
func (s *InMemoryStateStore) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, conversationID)
	return nil
}

var _ StateStore = (*InMemoryStateStore)(nil)
