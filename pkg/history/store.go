package history

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

var _ models.HistoryStore = &Store{}

// Store is the append-only interaction history of a single session. The lock only guards
// against two requests of the same session racing in the HTTP server.
type Store struct {
	mu    sync.RWMutex
	items []models.Interaction
}

func NewStore() *Store {
	return &Store{}
}

// Append adds an interaction at the end of the history.
func (s *Store) Append(interaction *models.Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *interaction)
}

// All returns a copy of the history in insertion order.
func (s *Store) All() []models.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Interaction, 0, len(s.items))
	if err := copier.Copy(&out, &s.items); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for identical types
		log.Errorf("failed to copy history: %v", err)
		out = append(out, s.items...)
	}
	for i := range out {
		out[i].Entities = slices.Clone(s.items[i].Entities)
	}
	return out
}

// Get returns a copy of the interaction at the zero-based index.
func (s *Store) Get(index int) (*models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.items) {
		return nil, models.NewNotFoundError(fmt.Sprintf("interaction %d", index))
	}
	ix := s.items[index]
	ix.Entities = slices.Clone(ix.Entities)
	return &ix, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
