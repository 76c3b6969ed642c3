package reporting

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gamegalaxy/exchange/models"
)

// GormStore answers dashboard queries straight from PostgreSQL. Every
// query is scoped to one seller.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) TotalSales(sellerID uint) (int, error) {
	var total sql.NullInt64
	err := s.db.Model(&models.SellerInventory{}).
		Select("SUM(seller_inventories.price * seller_inventories.quantity_available)").
		Joins("JOIN games ON games.id = seller_inventories.game_id").
		Where("seller_inventories.user_id = ? AND games.sold = ?", sellerID, true).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

func (s *GormStore) MonthlySales(sellerID uint, year int, month time.Month) (int, error) {
	var total sql.NullInt64
	err := s.db.Model(&models.SellerInventory{}).
		Select("SUM(seller_inventories.price * seller_inventories.quantity_available)").
		Joins("JOIN games ON games.id = seller_inventories.game_id").
		Where("seller_inventories.user_id = ? AND games.sold = ?", sellerID, true).
		Where("EXTRACT(YEAR FROM games.last_update) = ? AND EXTRACT(MONTH FROM games.last_update) = ?", year, int(month)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

func (s *GormStore) InventoryStatus(sellerID uint) ([]models.StockRow, error) {
	var rows []models.StockRow
	err := s.db.Model(&models.SellerInventory{}).
		Select("games.title AS title, seller_inventories.quantity_available AS quantity_available").
		Joins("JOIN games ON games.id = seller_inventories.game_id").
		Where("seller_inventories.user_id = ?", sellerID).
		Order("games.title ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *GormStore) PlatformSales(sellerID uint) ([]models.PlatformSales, error) {
	var rows []models.PlatformSales
	err := s.db.Model(&models.Game{}).
		Select("platforms.name AS name, SUM(games.price) AS sales").
		Joins("JOIN platforms ON platforms.id = games.platform_id").
		Where("games.publisher_id = ? AND games.sold = ?", sellerID, true).
		Group("platforms.name").
		Order("sales DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *GormStore) SalesTrend(sellerID uint) ([]models.TrendPoint, error) {
	var buckets []struct {
		Year  int
		Month int
		Total int
	}
	err := s.db.Model(&models.Game{}).
		Select("EXTRACT(YEAR FROM games.last_update)::int AS year, EXTRACT(MONTH FROM games.last_update)::int AS month, SUM(games.price) AS total").
		Where("games.publisher_id = ? AND games.sold = ?", sellerID, true).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	points := make([]models.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, models.TrendPoint{
			Month:      fmt.Sprintf("%d-%d", b.Year, b.Month),
			TotalSales: b.Total,
		})
	}
	return points, nil
}

func (s *GormStore) AverageRating(sellerID uint) (float64, bool, error) {
	var avg sql.NullFloat64
	err := s.db.Model(&models.Review{}).
		Select("AVG(reviews.rating)").
		Joins("JOIN games ON games.id = reviews.game_id").
		Where("games.publisher_id = ?", sellerID).
		Scan(&avg).Error
	if err != nil {
		return 0, false, err
	}
	return avg.Float64, avg.Valid, nil
}

func (s *GormStore) InventoryPage(sellerID uint, page, perPage int) ([]models.InventoryItem, int64, error) {
	base := s.db.Model(&models.Game{}).
		Where("games.publisher_id = ? AND games.sold = ?", sellerID, false)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.InventoryItem
	err := base.Session(&gorm.Session{}).
		Select(`games.id AS id, games.title AS title, games.description AS description,
			games.release_date AS release_date, users.username AS publisher,
			platforms.name AS platform, games.price AS price, games.condition AS condition,
			games.last_update AS last_update, games.sold AS sold,
			games.game_picture_url AS game_picture_url,
			seller_inventories.quantity_available AS quantity_available`).
		Joins("JOIN users ON users.id = games.publisher_id").
		Joins("JOIN platforms ON platforms.id = games.platform_id").
		Joins("JOIN seller_inventories ON seller_inventories.game_id = games.id").
		Order("games.release_date DESC, games.id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Scan(&items).Error
	return items, total, err
}
