// Package wishlist is the per-user ledger of saved listings. Entries are
// unique per (user, game); games on a user's wishlist disappear from that
// user's browse and search results until removed.
package wishlist

import (
	"time"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

type Store interface {
	GameExists(gameID uint) (bool, error)
	// Add inserts an entry; a duplicate (user, game) pair must come back
	// as a Conflict, which the unique index guarantees even under races.
	Add(entry *models.Wishlist) error
	Exists(userID, gameID uint) (bool, error)
	// Remove deletes the entry and reports whether one existed.
	Remove(userID, gameID uint) (bool, error)
	GameIDs(userID uint) ([]uint, error)
	Items(userID uint) ([]models.GameListing, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add saves a listing onto the user's wishlist.
func (s *Service) Add(userID, gameID uint) (*models.Wishlist, error) {
	exists, err := s.store.GameExists(gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Game not found.")
	}

	already, err := s.store.Exists(userID, gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if already {
		return nil, apperr.New(apperr.Conflict, "Game is already in the wishlist.")
	}

	entry := models.Wishlist{
		UserID:    userID,
		GameID:    gameID,
		DateAdded: time.Now().UTC(),
	}
	if err := s.store.Add(&entry); err != nil {
		// Lost a race with a concurrent add: the index turned it into a
		// Conflict, which is the documented outcome.
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.New(apperr.Conflict, "Game is already in the wishlist.")
		}
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return &entry, nil
}

// Remove drops a listing from the user's wishlist.
func (s *Service) Remove(userID, gameID uint) error {
	removed, err := s.store.Remove(userID, gameID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !removed {
		return apperr.New(apperr.NotFound, "Game not found in wishlist.")
	}
	return nil
}

// List returns the user's wishlisted games, enriched with platform and
// publisher names. Empty wishlist means empty slice, not an error.
func (s *Service) List(userID uint) ([]models.GameListing, error) {
	items, err := s.store.Items(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	for i := range items {
		items[i].IsInWishlist = true
	}
	return items, nil
}

// GameIDs and Contains make the service usable as the catalog's
// WishlistIndex.

func (s *Service) GameIDs(userID uint) ([]uint, error) {
	return s.store.GameIDs(userID)
}

func (s *Service) Contains(userID, gameID uint) (bool, error) {
	return s.store.Exists(userID, gameID)
}
