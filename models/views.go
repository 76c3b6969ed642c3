package models

import "time"

// GameListing is the browse/search/wishlist read model: a game joined with
// its platform and publisher display names.
type GameListing struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ReleaseDate    time.Time `json:"releaseDate"`
	Publisher      string    `json:"publisher"`
	Platform       string    `json:"platform"`
	Price          int       `json:"price"`
	Condition      string    `json:"condition"`
	LastUpdate     time.Time `json:"lastUpdate"`
	Sold           bool      `json:"sold"`
	GamePictureURL string    `json:"gamePictureURL"`
	IsInWishlist   bool      `json:"isInWishlist"`
}

// GameDetail is the single-listing view returned to the selling owner.
// It additionally reveals the publisher's contact details (the "buy" flow
// only exchanges contact information, no settlement happens here) and the
// inventory quantity.
type GameDetail struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ReleaseDate    string    `json:"releaseDate"`
	Publisher      string    `json:"publisher"`
	Address        string    `json:"address"`
	Number         string    `json:"number"`
	Platform       string    `json:"platform"`
	Price          int       `json:"price"`
	Condition      string    `json:"condition"`
	LastUpdate     time.Time `json:"last_update"`
	Sold           bool      `json:"sold"`
	GamePictureURL string    `json:"gamePictureURL"`
	IsInWishlist   bool      `json:"isInWishlist"`
	Quantity       int       `json:"quantity"`
}

// InventoryItem is one row of the paged seller inventory listing.
type InventoryItem struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ReleaseDate       time.Time `json:"release_date"`
	Publisher         string    `json:"publisher"`
	Platform          string    `json:"platform"`
	Price             int       `json:"price"`
	Condition         string    `json:"condition"`
	LastUpdate        time.Time `json:"last_update"`
	Sold              bool      `json:"sold"`
	GamePictureURL    string    `json:"game_picture_url"`
	QuantityAvailable int       `json:"quantity_available"`
}

// StockRow is one line of the dashboard inventory status report.
type StockRow struct {
	Title             string `json:"title"`
	QuantityAvailable int    `json:"quantity_available"`
}

// PlatformSales is one bar of the best-selling-platforms report.
type PlatformSales struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// TrendPoint is one point of the sales trend report; Month is "YYYY-M".
type TrendPoint struct {
	Month      string `json:"month"`
	TotalSales int    `json:"totalSales"`
}
