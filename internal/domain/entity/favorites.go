package entity

// FavoritesSet maps launch IDs to the launch as it looked when it was favorited.
// Order keeps insertion order so listings and the persisted blob are stable.
type FavoritesSet struct {
	byID  map[string]Launch
	order []string
}

// NewFavoritesSet builds a set from snapshots. Later duplicates of an ID are ignored.
func NewFavoritesSet(launches []Launch) *FavoritesSet {
	s := &FavoritesSet{byID: make(map[string]Launch, len(launches))}
	for _, l := range launches {
		if l.ID == "" {
			continue
		}
		if _, ok := s.byID[l.ID]; ok {
			continue
		}
		s.byID[l.ID] = l.Clone()
		s.order = append(s.order, l.ID)
	}
	return s
}

// Has reports membership of id.
func (s *FavoritesSet) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Get returns the snapshot stored for id.
func (s *FavoritesSet) Get(id string) (Launch, bool) {
	l, ok := s.byID[id]
	if !ok {
		return Launch{}, false
	}
	return l.Clone(), true
}

// Add stores a snapshot of l. It is a no-op if l.ID is already present.
func (s *FavoritesSet) Add(l Launch) {
	if s.Has(l.ID) {
		return
	}
	s.byID[l.ID] = l.Clone()
	s.order = append(s.order, l.ID)
}

// Remove deletes id from the set.
func (s *FavoritesSet) Remove(id string) {
	if !s.Has(id) {
		return
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of favorites.
func (s *FavoritesSet) Len() int {
	return len(s.order)
}

// Launches returns copies of every snapshot in insertion order.
func (s *FavoritesSet) Launches() []Launch {
	out := make([]Launch, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out
}
