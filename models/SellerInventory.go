package models

// SellerInventory mirrors the commercial terms of a listing for its seller.
// It is created together with the game and kept in sync on updates, but is
// a separate row so catalog terms and sellable terms can diverge.
type SellerInventory struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserID            uint   `gorm:"not null;index" json:"userId"`
	GameID            uint   `gorm:"not null;index" json:"gameId"`
	QuantityAvailable int    `gorm:"not null" json:"quantityAvailable"`
	Price             int    `gorm:"not null" json:"price"`
	Condition         string `json:"condition"`
}
