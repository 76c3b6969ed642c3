package accounts

import (
	"sync"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, users: make(map[uint]models.User)}
}

func (m *MemoryStore) ByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (m *MemoryStore) ByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) UsernameExists(username string) (bool, error) {
	u, err := m.ByUsername(username)
	return u != nil, err
}

func (m *MemoryStore) EmailExists(email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Create(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.New(apperr.Conflict, "Username already exists.")
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) Save(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}
