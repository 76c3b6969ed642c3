package models

import "time"

type Game struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"not null;uniqueIndex:idx_games_title_platform" json:"title"`
	Description    string    `json:"description"`
	ReleaseDate    time.Time `json:"releaseDate"`
	PublisherID    uint      `gorm:"not null" json:"publisherId"`
	Publisher      User      `gorm:"foreignKey:PublisherID" json:"-"`
	Price          int       `gorm:"not null" json:"price"`
	Condition      string    `json:"condition"`
	LastUpdate     time.Time `json:"lastUpdate"`
	Sold           bool      `gorm:"default:false" json:"sold"`
	PlatformID     uint      `gorm:"not null;uniqueIndex:idx_games_title_platform" json:"platformId"`
	Platform       Platform  `gorm:"foreignKey:PlatformID" json:"-"`
	GamePictureURL string    `json:"gamePictureURL"`
}

// GameDraft - fields accepted when a seller lists a game (multipart form).
type GameDraft struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description"`
	ReleaseDate string `form:"releaseDate" validate:"required"`
	Price       int    `form:"price" validate:"gte=0"`
	Condition   string `form:"condition"`
	PlatformID  uint   `form:"platformId" validate:"required,gte=1"`
	Quantity    int    `form:"quantity" validate:"gte=0"`
}

// GamePatch - partial update of a listing. Every field is optional; nil
// means the field was omitted and the stored value stays untouched.
type GamePatch struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
	ReleaseDate *string `form:"releaseDate"`
	Price       *int    `form:"price" validate:"omitempty,gte=0"`
	Condition   *string `form:"condition"`
	Sold        *bool   `form:"sold"`
	PlatformID  *uint   `form:"platformId" validate:"omitempty,gte=1"`
	Quantity    *int    `form:"quantity" validate:"omitempty,gte=0"`
}
