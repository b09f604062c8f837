package bubbleset

import "sync"

// Selection is a growable, ordered set of element ids. Watchers are
// told about every change so that they can follow the elements.
type Selection struct {
	mu       sync.Mutex
	ids      []ElementID
	has      map[ElementID]bool
	watchers map[int]func(added, removed []ElementID)
	next     int
}

// NewSelection returns a selection holding ids, duplicates dropped.
func NewSelection(ids ...ElementID) *Selection {
	s := &Selection{has: map[ElementID]bool{}}
	for _, id := range ids {
		if !s.has[id] {
			s.has[id] = true
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Add appends the ids that are not yet selected.
func (s *Selection) Add(ids ...ElementID) {
	s.mu.Lock()
	var added []ElementID
	for _, id := range ids {
		if s.has[id] {
			continue
		}
		s.has[id] = true
		s.ids = append(s.ids, id)
		added = append(added, id)
	}
	ws := s.watchList()
	s.mu.Unlock()
	if len(added) > 0 {
		for _, w := range ws {
			w(added, nil)
		}
	}
}

// Remove drops the ids that are selected.
func (s *Selection) Remove(ids ...ElementID) {
	s.mu.Lock()
	var removed []ElementID
	for _, id := range ids {
		if !s.has[id] {
			continue
		}
		delete(s.has, id)
		removed = append(removed, id)
	}
	if len(removed) > 0 {
		kept := s.ids[:0]
		for _, id := range s.ids {
			if s.has[id] {
				kept = append(kept, id)
			}
		}
		s.ids = kept
	}
	ws := s.watchList()
	s.mu.Unlock()
	if len(removed) > 0 {
		for _, w := range ws {
			w(nil, removed)
		}
	}
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []ElementID {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ElementID(nil), s.ids...)
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) Has(id ElementID) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has[id]
}

// Watch calls fn after every change with the ids added and removed.
// Calls happen outside the selection's lock.
func (s *Selection) Watch(fn func(added, removed []ElementID)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watchers == nil {
		s.watchers = map[int]func(added, removed []ElementID){}
	}
	id := s.next
	s.next++
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

func (s *Selection) watchList() []func(added, removed []ElementID) {
	ws := make([]func(added, removed []ElementID), 0, len(s.watchers))
	for i := 0; i < s.next; i++ {
		if w, ok := s.watchers[i]; ok {
			ws = append(ws, w)
		}
	}
	return ws
}
