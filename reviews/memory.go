package reviews

import (
	"sort"
	"sync"

	"github.com/gamegalaxy/exchange/models"
)

// MemoryStore backs tests.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  uint
	games   map[uint]bool
	users   map[uint]string
	reviews []models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[uint]bool), users: make(map[uint]string)}
}

func (s *MemoryStore) AddGame(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = true
}

func (s *MemoryStore) AddUser(id uint, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = username
}

func (s *MemoryStore) GameExists(gameID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[gameID], nil
}

func (s *MemoryStore) Add(review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	review.ID = s.nextID
	s.reviews = append(s.reviews, *review)
	return nil
}

func (s *MemoryStore) ForGame(gameID uint) ([]models.ReviewView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var views []models.ReviewView
	for _, r := range s.reviews {
		if r.GameID != gameID {
			continue
		}
		views = append(views, models.ReviewView{
			ID:         r.ID,
			UserID:     r.UserID,
			GameID:     r.GameID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			DatePosted: r.DatePosted,
			UserName:   s.users[r.UserID],
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].DatePosted.After(views[j].DatePosted)
	})
	return views, nil
}

func (s *MemoryStore) UsernameOf(userID uint) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[userID], nil
}
