package wishlist

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GameExists(gameID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Game{}).Where("id = ?", gameID).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Add(entry *models.Wishlist) error {
	err := s.db.Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.Conflict, "Game is already in the wishlist.", err)
	}
	return err
}

func (s *GormStore) Exists(userID, gameID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Wishlist{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Remove(userID, gameID uint) (bool, error) {
	res := s.db.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.Wishlist{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GameIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Wishlist{}).
		Where("user_id = ?", userID).
		Pluck("game_id", &ids).Error
	return ids, err
}

func (s *GormStore) Items(userID uint) ([]models.GameListing, error) {
	items := []models.GameListing{}
	err := s.db.Model(&models.Wishlist{}).
		Select("games.id, games.title, games.description, games.release_date, "+
			"users.username AS publisher, platforms.name AS platform, games.price, "+
			"games.condition, games.last_update, games.sold, games.game_picture_url").
		Joins("JOIN games ON games.id = wishlists.game_id").
		Joins("JOIN users ON users.id = games.publisher_id").
		Joins("JOIN platforms ON platforms.id = games.platform_id").
		Where("wishlists.user_id = ?", userID).
		Order("wishlists.date_added DESC").
		Scan(&items).Error
	return items, err
}
