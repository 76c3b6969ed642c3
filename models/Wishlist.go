package models

import "time"

// Wishlist rows are unique per (user, game); the composite index backs the
// duplicate-add conflict check even when two adds race.
type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_game" json:"userId"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_game" json:"gameId"`
	DateAdded time.Time `json:"dateAdded"`
}
