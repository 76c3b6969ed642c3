// Package reviews is the append-only ledger of ratings and comments per
// listing. The average rating is always derived, never stored.
package reviews

import (
	"time"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/utils"
)

type Store interface {
	GameExists(gameID uint) (bool, error)
	Add(review *models.Review) error
	ForGame(gameID uint) ([]models.ReviewView, error)
	UsernameOf(userID uint) (string, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add appends a review. Ratings are clamped to the five-star control by
// validation, not silently adjusted.
func (s *Service) Add(userID, gameID uint, input models.ReviewInput) (*models.ReviewView, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	exists, err := s.store.GameExists(gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Game not found.")
	}

	review := models.Review{
		UserID:     userID,
		GameID:     gameID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		DatePosted: time.Now().UTC(),
	}
	if err := s.store.Add(&review); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to add review", err)
	}

	username, err := s.store.UsernameOf(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return &models.ReviewView{
		ID:         review.ID,
		UserID:     review.UserID,
		GameID:     review.GameID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		DatePosted: review.DatePosted,
		UserName:   username,
	}, nil
}

// List returns a game's reviews with author names; empty slice when none.
func (s *Service) List(gameID uint) ([]models.ReviewView, error) {
	reviews, err := s.store.ForGame(gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if reviews == nil {
		reviews = []models.ReviewView{}
	}
	return reviews, nil
}
