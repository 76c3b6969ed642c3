// Package reporting derives the seller dashboard aggregates from the
// catalog, inventory and review ledgers. Read-only; no state of its own.
package reporting

import (
	"sync"
	"time"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

type Store interface {
	// TotalSales sums inventory price x quantity over the seller's sold
	// games.
	TotalSales(sellerID uint) (int, error)
	// MonthlySales is TotalSales restricted to games last updated in the
	// given calendar month.
	MonthlySales(sellerID uint, year int, month time.Month) (int, error)
	InventoryStatus(sellerID uint) ([]models.StockRow, error)
	// PlatformSales groups the seller's sold games by platform name and
	// sums the listing price (not the inventory price; historical metric
	// definition, kept as-is).
	PlatformSales(sellerID uint) ([]models.PlatformSales, error)
	SalesTrend(sellerID uint) ([]models.TrendPoint, error)
	// AverageRating reports ok=false when the seller's games have no
	// reviews at all.
	AverageRating(sellerID uint) (float64, bool, error)
	InventoryPage(sellerID uint, page, perPage int) ([]models.InventoryItem, int64, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) TotalSales(sellerID uint) (int, error) {
	total, err := s.store.TotalSales(sellerID)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Failed to calculate total sales", err)
	}
	return total, nil
}

func (s *Service) MonthlySales(sellerID uint) (int, error) {
	now := s.now().UTC()
	total, err := s.store.MonthlySales(sellerID, now.Year(), now.Month())
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Failed to calculate monthly sales", err)
	}
	return total, nil
}

func (s *Service) InventoryStatus(sellerID uint) ([]models.StockRow, error) {
	rows, err := s.store.InventoryStatus(sellerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve inventory status", err)
	}
	if rows == nil {
		rows = []models.StockRow{}
	}
	return rows, nil
}

func (s *Service) PlatformSales(sellerID uint) ([]models.PlatformSales, error) {
	rows, err := s.store.PlatformSales(sellerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve platform sales", err)
	}
	if rows == nil {
		rows = []models.PlatformSales{}
	}
	return rows, nil
}

func (s *Service) SalesTrend(sellerID uint) ([]models.TrendPoint, error) {
	points, err := s.store.SalesTrend(sellerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve sales trend", err)
	}
	if points == nil {
		points = []models.TrendPoint{}
	}
	return points, nil
}

// AverageRating is exactly 0 when no reviews exist, never an error.
func (s *Service) AverageRating(sellerID uint) (float64, error) {
	avg, ok, err := s.store.AverageRating(sellerID)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Failed to retrieve average rating", err)
	}
	if !ok {
		return 0, nil
	}
	return avg, nil
}

func (s *Service) InventoryPage(sellerID uint, page, perPage int) ([]models.InventoryItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 6
	}
	items, total, err := s.store.InventoryPage(sellerID, page, perPage)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to retrieve seller inventory", err)
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, total, nil
}

// Dashboard bundles all aggregates for one seller. The queries are
// independent, so they run concurrently; the first error wins.
type Dashboard struct {
	TotalSales    int                    `json:"totalSales"`
	MonthlySales  int                    `json:"monthlySales"`
	Inventory     []models.StockRow      `json:"inventory"`
	PlatformSales []models.PlatformSales `json:"platformSales"`
	SalesTrend    []models.TrendPoint    `json:"salesTrend"`
	AverageRating float64                `json:"averageRating"`
}

func (s *Service) Dashboard(sellerID uint) (*Dashboard, error) {
	var (
		dash     Dashboard
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(6)
	go func() {
		defer wg.Done()
		v, err := s.TotalSales(sellerID)
		if err != nil {
			fail(err)
			return
		}
		dash.TotalSales = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.MonthlySales(sellerID)
		if err != nil {
			fail(err)
			return
		}
		dash.MonthlySales = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.InventoryStatus(sellerID)
		if err != nil {
			fail(err)
			return
		}
		dash.Inventory = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.PlatformSales(sellerID)
		if err != nil {
			fail(err)
			return
		}
		dash.PlatformSales = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.SalesTrend(sellerID)
		if err != nil {
			fail(err)
			return
		}
		dash.SalesTrend = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.AverageRating(sellerID)
		if err != nil {
			fail(err)
			return
		}
		dash.AverageRating = v
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &dash, nil
}
