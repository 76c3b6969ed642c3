package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

// MemoryStore is an in-memory Store used by tests and local tooling. It
// applies the same ordering, exclusion and uniqueness rules as the gorm
// store.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    uint
	users     map[uint]models.User
	platforms map[uint]models.Platform
	games     map[uint]*models.Game
	inventory []*models.SellerInventory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint]models.User),
		platforms: make(map[uint]models.Platform),
		games:     make(map[uint]*models.Game),
	}
}

func (s *MemoryStore) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemoryStore) AddPlatform(p models.Platform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platforms[p.ID] = p
}

func (s *MemoryStore) listing(g *models.Game) models.GameListing {
	return models.GameListing{
		ID:             g.ID,
		Title:          g.Title,
		Description:    g.Description,
		ReleaseDate:    g.ReleaseDate,
		Publisher:      s.users[g.PublisherID].Username,
		Platform:       s.platforms[g.PlatformID].Name,
		Price:          g.Price,
		Condition:      g.Condition,
		LastUpdate:     g.LastUpdate,
		Sold:           g.Sold,
		GamePictureURL: g.GamePictureURL,
	}
}

func (s *MemoryStore) ListGames(f Filter, page, perPage int) ([]models.GameListing, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[uint]bool, len(f.ExcludeIDs))
	for _, id := range f.ExcludeIDs {
		excluded[id] = true
	}

	var matched []*models.Game
	for _, g := range s.games {
		if g.Sold || excluded[g.ID] {
			continue
		}
		if f.Term != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(f.Term)) {
			continue
		}
		matched = append(matched, g)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ReleaseDate.Equal(matched[j].ReleaseDate) {
			return matched[i].ReleaseDate.After(matched[j].ReleaseDate)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (page - 1) * perPage
	if start >= len(matched) {
		return []models.GameListing{}, total, nil
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.GameListing, 0, end-start)
	for _, g := range matched[start:end] {
		out = append(out, s.listing(g))
	}
	return out, total, nil
}

func (s *MemoryStore) GameByID(id uint) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (s *MemoryStore) OwnedDetail(gameID, sellerID uint) (*models.GameDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[gameID]
	if !ok {
		return nil, nil
	}
	var inv *models.SellerInventory
	for _, i := range s.inventory {
		if i.GameID == gameID && i.UserID == sellerID {
			inv = i
			break
		}
	}
	if inv == nil {
		return nil, nil
	}
	pub := s.users[g.PublisherID]
	return &models.GameDetail{
		ID:             g.ID,
		Title:          g.Title,
		Description:    g.Description,
		ReleaseDate:    g.ReleaseDate.Format("2006-01-02"),
		Publisher:      pub.Username,
		Address:        pub.Address,
		Number:         pub.PhoneNumber,
		Platform:       s.platforms[g.PlatformID].Name,
		Price:          g.Price,
		Condition:      g.Condition,
		LastUpdate:     g.LastUpdate,
		Sold:           g.Sold,
		GamePictureURL: g.GamePictureURL,
		Quantity:       inv.QuantityAvailable,
	}, nil
}

func (s *MemoryStore) TitleExists(title string, platformID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if g.Title == title && g.PlatformID == platformID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) PlatformExists(id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.platforms[id]
	return ok, nil
}

func (s *MemoryStore) Platforms() ([]models.Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Platform, 0, len(s.platforms))
	for _, p := range s.platforms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateGameWithInventory(g *models.Game, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.games {
		if existing.Title == g.Title && existing.PlatformID == g.PlatformID {
			return apperr.New(apperr.Conflict, "A game with the same title and platform already exists.")
		}
	}
	s.nextID++
	g.ID = s.nextID
	copied := *g
	s.games[g.ID] = &copied
	s.nextID++
	s.inventory = append(s.inventory, &models.SellerInventory{
		ID:                s.nextID,
		UserID:            g.PublisherID,
		GameID:            g.ID,
		QuantityAvailable: quantity,
		Price:             g.Price,
		Condition:         g.Condition,
	})
	return nil
}

func (s *MemoryStore) SaveGame(g *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *g
	s.games[g.ID] = &copied
	return nil
}

func (s *MemoryStore) InventoryFor(gameID, sellerID uint) (*models.SellerInventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.inventory {
		if i.GameID == gameID && i.UserID == sellerID {
			copied := *i
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) SaveInventory(inv *models.SellerInventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, i := range s.inventory {
		if i.ID == inv.ID {
			copied := *inv
			s.inventory[idx] = &copied
			return nil
		}
	}
	copied := *inv
	s.inventory = append(s.inventory, &copied)
	return nil
}

func (s *MemoryStore) DeleteGameCascade(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	kept := s.inventory[:0]
	for _, i := range s.inventory {
		if i.GameID != id {
			kept = append(kept, i)
		}
	}
	s.inventory = kept
	return nil
}
