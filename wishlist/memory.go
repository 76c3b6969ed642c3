package wishlist

import (
	"sort"
	"sync"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

// MemoryStore backs tests. Games are registered up front; listing
// enrichment carries whatever names the test seeded.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  uint
	games   map[uint]models.GameListing
	entries []models.Wishlist
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[uint]models.GameListing)}
}

func (s *MemoryStore) AddGame(g models.GameListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *MemoryStore) GameExists(gameID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[gameID]
	return ok, nil
}

func (s *MemoryStore) Add(entry *models.Wishlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.UserID == entry.UserID && e.GameID == entry.GameID {
			return apperr.New(apperr.Conflict, "Game is already in the wishlist.")
		}
	}
	s.nextID++
	entry.ID = s.nextID
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *MemoryStore) Exists(userID, gameID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.UserID == userID && e.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Remove(userID, gameID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.UserID == userID && e.GameID == gameID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) GameIDs(userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []uint
	for _, e := range s.entries {
		if e.UserID == userID {
			ids = append(ids, e.GameID)
		}
	}
	return ids, nil
}

func (s *MemoryStore) Items(userID uint) ([]models.GameListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matching := []models.Wishlist{}
	for _, e := range s.entries {
		if e.UserID == userID {
			matching = append(matching, e)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].DateAdded.After(matching[j].DateAdded)
	})
	items := []models.GameListing{}
	for _, e := range matching {
		if g, ok := s.games[e.GameID]; ok {
			items = append(items, g)
		}
	}
	return items, nil
}
