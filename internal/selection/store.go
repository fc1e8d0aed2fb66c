package selection

import (
	"sync"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/utm"
)

// Selection is the point the user picked last, together with its zone.
type Selection struct {
	Coordinates models.Coordinates
	Zone        utm.Zone
	Source      models.Source
	SelectedAt  time.Time
}

// Store holds at most one Selection. Writers overwrite each other; the last Set wins.
// The zero value is an empty store ready for use.
type Store struct {
	mu      sync.RWMutex
	current *Selection
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current selection.
func (s *Store) Set(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &sel
}

// Reset clears the current selection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
}

// Current returns a copy of the current selection and whether one is set.
func (s *Store) Current() (Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Selection{}, false
	}

	return *s.current, true
}
