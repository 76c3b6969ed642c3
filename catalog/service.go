package catalog

import (
	"mime/multipart"
	"time"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/uploads"
	"github.com/gamegalaxy/exchange/utils"
)

type Service struct {
	store    Store
	wishlist WishlistIndex
	images   uploads.ImageStore
}

func NewService(store Store, wishlist WishlistIndex, images uploads.ImageStore) *Service {
	return &Service{store: store, wishlist: wishlist, images: images}
}

// Browse returns one page of listings for the caller, hiding sold games
// and games already on the caller's wishlist.
func (s *Service) Browse(userID uint, page, perPage int) ([]models.GameListing, int64, error) {
	return s.page(userID, "", page, perPage)
}

// Search is Browse narrowed to a title substring.
func (s *Service) Search(userID uint, term string, page, perPage int) ([]models.GameListing, int64, error) {
	return s.page(userID, term, page, perPage)
}

func (s *Service) page(userID uint, term string, page, perPage int) ([]models.GameListing, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 6
	}
	excluded, err := s.wishlist.GameIDs(userID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to retrieve games", err)
	}
	listings, total, err := s.store.ListGames(Filter{Term: term, ExcludeIDs: excluded}, page, perPage)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to retrieve games", err)
	}
	if listings == nil {
		listings = []models.GameListing{}
	}
	return listings, total, nil
}

// Detail returns the owner-joined view of a single listing. A game the
// caller holds no inventory for is reported as absent, not forbidden.
func (s *Service) Detail(gameID, userID uint) (*models.GameDetail, error) {
	detail, err := s.store.OwnedDetail(gameID, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if detail == nil {
		return nil, apperr.New(apperr.NotFound, "Game not found.")
	}
	inWishlist, err := s.wishlist.Contains(userID, gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	detail.IsInWishlist = inWishlist
	return detail, nil
}

// Create lists a game for the seller. The (title, platform) pair is
// globally unique; the matching inventory row is created atomically with
// the game, and a failed picture upload aborts the whole create.
func (s *Service) Create(sellerID uint, draft models.GameDraft, picture *multipart.FileHeader) (*models.Game, error) {
	if err := utils.ValidateStruct(draft); err != nil {
		return nil, err
	}
	releaseDate, err := time.Parse("2006-01-02", draft.ReleaseDate)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "releaseDate must be YYYY-MM-DD")
	}

	exists, err := s.store.TitleExists(draft.Title, draft.PlatformID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "A game with the same title and platform already exists.")
	}

	platformOK, err := s.store.PlatformExists(draft.PlatformID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !platformOK {
		return nil, apperr.New(apperr.Validation, "Invalid platform.")
	}

	pictureURL := ""
	if picture != nil {
		pictureURL, err = s.images.Save(sellerID, picture, "games_pictures")
		if err != nil {
			return nil, err
		}
	}

	game := models.Game{
		Title:          draft.Title,
		Description:    draft.Description,
		ReleaseDate:    releaseDate,
		PublisherID:    sellerID,
		Price:          draft.Price,
		Condition:      draft.Condition,
		LastUpdate:     time.Now().UTC(),
		Sold:           false,
		PlatformID:     draft.PlatformID,
		GamePictureURL: pictureURL,
	}
	if err := s.store.CreateGameWithInventory(&game, draft.Quantity); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to add game", err)
	}
	return &game, nil
}

// Update applies a partial patch to a listing the caller owns. Omitted
// fields stay untouched; last_update always advances; quantity, price and
// condition changes are mirrored into the seller's inventory row.
func (s *Service) Update(sellerID, gameID uint, patch models.GamePatch) (*models.Game, error) {
	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}

	game, err := s.store.GameByID(gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if game == nil {
		return nil, apperr.New(apperr.NotFound, "Game not found.")
	}
	if game.PublisherID != sellerID {
		return nil, apperr.New(apperr.Forbidden, "You are not authorized to update this game.")
	}

	if patch.Title != nil && *patch.Title != "" {
		game.Title = *patch.Title
	}
	if patch.Description != nil && *patch.Description != "" {
		game.Description = *patch.Description
	}
	if patch.ReleaseDate != nil && *patch.ReleaseDate != "" {
		releaseDate, err := time.Parse("2006-01-02", *patch.ReleaseDate)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "releaseDate must be YYYY-MM-DD")
		}
		game.ReleaseDate = releaseDate
	}
	if patch.Price != nil {
		game.Price = *patch.Price
	}
	if patch.Condition != nil && *patch.Condition != "" {
		game.Condition = *patch.Condition
	}
	if patch.Sold != nil {
		game.Sold = *patch.Sold
	}
	if patch.PlatformID != nil {
		platformOK, err := s.store.PlatformExists(*patch.PlatformID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
		if !platformOK {
			return nil, apperr.New(apperr.Validation, "Invalid platform.")
		}
		game.PlatformID = *patch.PlatformID
	}
	game.LastUpdate = time.Now().UTC()

	if err := s.store.SaveGame(game); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update game", err)
	}

	inv, err := s.store.InventoryFor(gameID, sellerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if inv != nil {
		if patch.Quantity != nil {
			inv.QuantityAvailable = *patch.Quantity
		}
		if patch.Price != nil {
			inv.Price = *patch.Price
		}
		if patch.Condition != nil && *patch.Condition != "" {
			inv.Condition = *patch.Condition
		}
		if err := s.store.SaveInventory(inv); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to update game", err)
		}
	}
	return game, nil
}

// SetPicture replaces the listing picture; owner only.
func (s *Service) SetPicture(sellerID, gameID uint, picture *multipart.FileHeader) (*models.Game, error) {
	game, err := s.store.GameByID(gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if game == nil {
		return nil, apperr.New(apperr.NotFound, "Game not found.")
	}
	if game.PublisherID != sellerID {
		return nil, apperr.New(apperr.Forbidden, "You are not authorized to update this game.")
	}

	url, err := s.images.Save(sellerID, picture, "games_pictures")
	if err != nil {
		return nil, err
	}
	game.GamePictureURL = url
	game.LastUpdate = time.Now().UTC()
	if err := s.store.SaveGame(game); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to upload game picture", err)
	}
	return game, nil
}

// Delete removes a listing and cascades to its inventory and wishlist
// rows. Only the owner may delete.
func (s *Service) Delete(sellerID, gameID uint) error {
	game, err := s.store.GameByID(gameID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if game == nil {
		return apperr.New(apperr.NotFound, "Game not found.")
	}
	if game.PublisherID != sellerID {
		return apperr.New(apperr.Forbidden, "You are not authorized to delete this game.")
	}
	if err := s.store.DeleteGameCascade(gameID); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete game", err)
	}
	return nil
}

// Platforms lists the static platform reference data.
func (s *Service) Platforms() ([]models.Platform, error) {
	platforms, err := s.store.Platforms()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve platforms", err)
	}
	if len(platforms) == 0 {
		return nil, apperr.New(apperr.NotFound, "No platforms found.")
	}
	return platforms, nil
}
