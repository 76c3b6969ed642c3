package reviews

import (
	"errors"

	"gorm.io/gorm"

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

func (s *GormStore) Add(review *models.Review) error {
	return s.db.Create(review).Error
}

func (s *GormStore) ForGame(gameID uint) ([]models.ReviewView, error) {
	views := []models.ReviewView{}
	err := s.db.Model(&models.Review{}).
		Select("reviews.id, reviews.user_id, reviews.game_id, reviews.rating, "+
			"reviews.comment, reviews.date_posted, users.username AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.game_id = ?", gameID).
		Order("reviews.date_posted DESC").
		Scan(&views).Error
	return views, err
}

func (s *GormStore) UsernameOf(userID uint) (string, error) {
	var user models.User
	err := s.db.Select("username").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
