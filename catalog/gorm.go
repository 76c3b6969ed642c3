package catalog

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

const listingSelect = "games.id, games.title, games.description, games.release_date, " +
	"users.username AS publisher, platforms.name AS platform, games.price, " +
	"games.condition, games.last_update, games.sold, games.game_picture_url"

func (s *GormStore) listingQuery(f Filter) *gorm.DB {
	q := s.db.Model(&models.Game{}).
		Joins("JOIN users ON users.id = games.publisher_id").
		Joins("JOIN platforms ON platforms.id = games.platform_id").
		Where("games.sold = ?", false)
	if f.Term != "" {
		q = q.Where("games.title ILIKE ?", "%"+f.Term+"%")
	}
	if len(f.ExcludeIDs) > 0 {
		q = q.Where("games.id NOT IN ?", f.ExcludeIDs)
	}
	return q
}

func (s *GormStore) ListGames(f Filter, page, perPage int) ([]models.GameListing, int64, error) {
	q := s.listingQuery(f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listings := []models.GameListing{}
	err := q.Session(&gorm.Session{}).Select(listingSelect).
		Order("games.release_date DESC, games.id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Scan(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (s *GormStore) GameByID(id uint) (*models.Game, error) {
	var game models.Game
	err := s.db.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GormStore) OwnedDetail(gameID, sellerID uint) (*models.GameDetail, error) {
	var game models.Game
	err := s.db.Preload("Publisher").Preload("Platform").First(&game, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	inv, err := s.InventoryFor(gameID, sellerID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}

	return &models.GameDetail{
		ID:             game.ID,
		Title:          game.Title,
		Description:    game.Description,
		ReleaseDate:    game.ReleaseDate.Format("2006-01-02"),
		Publisher:      game.Publisher.Username,
		Address:        game.Publisher.Address,
		Number:         game.Publisher.PhoneNumber,
		Platform:       game.Platform.Name,
		Price:          game.Price,
		Condition:      game.Condition,
		LastUpdate:     game.LastUpdate,
		Sold:           game.Sold,
		GamePictureURL: game.GamePictureURL,
		Quantity:       inv.QuantityAvailable,
	}, nil
}

func (s *GormStore) TitleExists(title string, platformID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Game{}).
		Where("title = ? AND platform_id = ?", title, platformID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) PlatformExists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Platform{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Platforms() ([]models.Platform, error) {
	var platforms []models.Platform
	if err := s.db.Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

func (s *GormStore) CreateGameWithInventory(g *models.Game, quantity int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		inv := models.SellerInventory{
			UserID:            g.PublisherID,
			GameID:            g.ID,
			QuantityAvailable: quantity,
			Price:             g.Price,
			Condition:         g.Condition,
		}
		return tx.Create(&inv).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Unique (title, platform) index: a racing create got there first.
		return apperr.Wrap(apperr.Conflict, "A game with the same title and platform already exists.", err)
	}
	return err
}

func (s *GormStore) SaveGame(g *models.Game) error {
	return s.db.Save(g).Error
}

func (s *GormStore) InventoryFor(gameID, sellerID uint) (*models.SellerInventory, error) {
	var inv models.SellerInventory
	err := s.db.Where("game_id = ? AND user_id = ?", gameID, sellerID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *GormStore) SaveInventory(inv *models.SellerInventory) error {
	return s.db.Save(inv).Error
}

func (s *GormStore) DeleteGameCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&models.SellerInventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Wishlist{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, id).Error
	})
}
