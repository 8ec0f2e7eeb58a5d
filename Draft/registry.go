package Draft

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds the live drafts by session id. Each draft has exactly one
// owner: the client that started it.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Start creates a new draft and returns its session id.
func (r *Registry) Start() (string, *Draft) {
	id := uuid.NewString()
	d := New()
	r.mu.Lock()
	r.drafts[id] = d
	r.mu.Unlock()
	return id, d
}

// Get looks up a live draft by session id.
func (r *Registry) Get(id string) (*Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	return d, ok
}

// Drop discards a session's draft.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
}
