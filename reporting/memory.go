package reporting

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gamegalaxy/exchange/models"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[uint]models.User
	platforms   map[uint]models.Platform
	games       map[uint]models.Game
	inventories []models.SellerInventory
	reviews     []models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint]models.User),
		platforms: make(map[uint]models.Platform),
		games:     make(map[uint]models.Game),
	}
}

func (m *MemoryStore) AddUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *MemoryStore) AddPlatform(p models.Platform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.platforms[p.ID] = p
}

func (m *MemoryStore) AddGame(g models.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
}

func (m *MemoryStore) AddInventory(inv models.SellerInventory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventories = append(m.inventories, inv)
}

func (m *MemoryStore) AddReview(r models.Review) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, r)
}

func (m *MemoryStore) TotalSales(sellerID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, inv := range m.inventories {
		if inv.UserID != sellerID {
			continue
		}
		if g, ok := m.games[inv.GameID]; ok && g.Sold {
			total += inv.Price * inv.QuantityAvailable
		}
	}
	return total, nil
}

func (m *MemoryStore) MonthlySales(sellerID uint, year int, month time.Month) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, inv := range m.inventories {
		if inv.UserID != sellerID {
			continue
		}
		g, ok := m.games[inv.GameID]
		if !ok || !g.Sold {
			continue
		}
		if g.LastUpdate.Year() == year && g.LastUpdate.Month() == month {
			total += inv.Price * inv.QuantityAvailable
		}
	}
	return total, nil
}

func (m *MemoryStore) InventoryStatus(sellerID uint) ([]models.StockRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []models.StockRow
	for _, inv := range m.inventories {
		if inv.UserID != sellerID {
			continue
		}
		if g, ok := m.games[inv.GameID]; ok {
			rows = append(rows, models.StockRow{Title: g.Title, QuantityAvailable: inv.QuantityAvailable})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Title < rows[j].Title })
	return rows, nil
}

func (m *MemoryStore) PlatformSales(sellerID uint) ([]models.PlatformSales, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byName := make(map[string]int)
	for _, g := range m.games {
		if g.PublisherID != sellerID || !g.Sold {
			continue
		}
		name := ""
		if p, ok := m.platforms[g.PlatformID]; ok {
			name = p.Name
		}
		byName[name] += g.Price
	}
	rows := make([]models.PlatformSales, 0, len(byName))
	for name, sales := range byName {
		rows = append(rows, models.PlatformSales{Name: name, Sales: sales})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Sales != rows[j].Sales {
			return rows[i].Sales > rows[j].Sales
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (m *MemoryStore) SalesTrend(sellerID uint) ([]models.TrendPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	type bucket struct {
		year  int
		month int
	}
	byMonth := make(map[bucket]int)
	for _, g := range m.games {
		if g.PublisherID != sellerID || !g.Sold {
			continue
		}
		byMonth[bucket{g.LastUpdate.Year(), int(g.LastUpdate.Month())}] += g.Price
	}
	keys := make([]bucket, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	points := make([]models.TrendPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, models.TrendPoint{
			Month:      fmt.Sprintf("%d-%d", k.year, k.month),
			TotalSales: byMonth[k],
		})
	}
	return points, nil
}

func (m *MemoryStore) AverageRating(sellerID uint) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum, count := 0, 0
	for _, r := range m.reviews {
		if g, ok := m.games[r.GameID]; ok && g.PublisherID == sellerID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, false, nil
	}
	return float64(sum) / float64(count), true, nil
}

func (m *MemoryStore) InventoryPage(sellerID uint, page, perPage int) ([]models.InventoryItem, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qtyFor := func(gameID uint) int {
		for _, inv := range m.inventories {
			if inv.GameID == gameID {
				return inv.QuantityAvailable
			}
		}
		return 0
	}
	var all []models.InventoryItem
	for _, g := range m.games {
		if g.PublisherID != sellerID || g.Sold {
			continue
		}
		item := models.InventoryItem{
			ID:                g.ID,
			Title:             g.Title,
			Description:       g.Description,
			ReleaseDate:       g.ReleaseDate,
			Price:             g.Price,
			Condition:         g.Condition,
			LastUpdate:        g.LastUpdate,
			Sold:              g.Sold,
			GamePictureURL:    g.GamePictureURL,
			QuantityAvailable: qtyFor(g.ID),
		}
		if u, ok := m.users[g.PublisherID]; ok {
			item.Publisher = u.Username
		}
		if p, ok := m.platforms[g.PlatformID]; ok {
			item.Platform = p.Name
		}
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].ReleaseDate.Equal(all[j].ReleaseDate) {
			return all[i].ReleaseDate.After(all[j].ReleaseDate)
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.InventoryItem{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}
