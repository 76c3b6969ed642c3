// Package catalog owns game listings: browse/search with wishlist and
// sold-state exclusion, creation with the mirrored seller inventory row,
// owner-gated updates with partial patches, and deletion.
package catalog

import "github.com/gamegalaxy/exchange/models"

// Filter narrows a listing page. ExcludeIDs carries the caller's
// wishlisted games; Term is a title substring.
type Filter struct {
	Term       string
	ExcludeIDs []uint
}

// Store is the persistence surface behind the catalog service. The gorm
// implementation backs production; the memory one backs tests.
type Store interface {
	// ListGames returns one page of unsold games not in ExcludeIDs,
	// newest release first, plus the total match count.
	ListGames(f Filter, page, perPage int) ([]models.GameListing, int64, error)
	GameByID(id uint) (*models.Game, error)
	// OwnedDetail joins a game with the caller's inventory row; nil when
	// the game does not exist or the caller holds no inventory for it.
	OwnedDetail(gameID, sellerID uint) (*models.GameDetail, error)
	TitleExists(title string, platformID uint) (bool, error)
	PlatformExists(id uint) (bool, error)
	Platforms() ([]models.Platform, error)
	// CreateGameWithInventory atomically inserts the game and its seller
	// inventory row.
	CreateGameWithInventory(g *models.Game, quantity int) error
	SaveGame(g *models.Game) error
	InventoryFor(gameID, sellerID uint) (*models.SellerInventory, error)
	SaveInventory(inv *models.SellerInventory) error
	// DeleteGameCascade removes the game together with its inventory and
	// wishlist rows.
	DeleteGameCascade(id uint) error
}

// WishlistIndex is the read-side view of the wishlist ledger the catalog
// needs for exclusion and the isInWishlist marker.
type WishlistIndex interface {
	GameIDs(userID uint) ([]uint, error)
	Contains(userID, gameID uint) (bool, error)
}
