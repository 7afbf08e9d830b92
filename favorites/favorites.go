// Package favorites holds the set of items a user has marked.
package favorites

import "time"

// Mark records a favorited item and when it was marked.
type Mark struct {
	ItemID   string
	MarkedAt time.Time
}

// Set is an ordered favorites set, most recently marked last.
type Set struct {
	marks []Mark
	index map[string]int
}

// NewSet creates an empty favorites set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Toggle adds or removes a mark and reports whether the item is a
// favorite afterwards.
func (s *Set) Toggle(itemID string, now time.Time) bool {
	if itemID == "" {
		return false
	}
	if _, exists := s.index[itemID]; exists {
		s.remove(itemID)
		return false
	}
	s.index[itemID] = len(s.marks)
	s.marks = append(s.marks, Mark{ItemID: itemID, MarkedAt: now})
	return true
}

// IsFavorite reports whether the item is marked.
func (s *Set) IsFavorite(itemID string) bool {
	_, exists := s.index[itemID]
	return exists
}

// Marks returns a copy of the marks in marking order.
func (s *Set) Marks() []Mark {
	return append([]Mark(nil), s.marks...)
}

// Len returns the number of marks.
func (s *Set) Len() int {
	return len(s.marks)
}

// Clear removes all marks.
func (s *Set) Clear() {
	s.marks = nil
	s.index = make(map[string]int)
}

// Restore replaces the set contents from persisted marks.
func (s *Set) Restore(marks []Mark) {
	s.Clear()
	for _, mark := range marks {
		if mark.ItemID == "" {
			continue
		}
		if _, exists := s.index[mark.ItemID]; exists {
			continue
		}
		s.index[mark.ItemID] = len(s.marks)
		s.marks = append(s.marks, mark)
	}
}

func (s *Set) remove(itemID string) {
	pos := s.index[itemID]
	s.marks = append(s.marks[:pos], s.marks[pos+1:]...)
	delete(s.index, itemID)
	for i := pos; i < len(s.marks); i++ {
		s.index[s.marks[i].ItemID] = i
	}
}
