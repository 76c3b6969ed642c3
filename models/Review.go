package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null" json:"userId"`
	GameID     uint      `gorm:"not null" json:"gameId"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `json:"comment"`
	DatePosted time.Time `json:"datePosted"`
}

// ReviewInput - posted review body; ratings follow the five-star control.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewView is a review joined with the author's display name.
type ReviewView struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	GameID     uint      `json:"gameId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	DatePosted time.Time `json:"datePosted"`
	UserName   string    `json:"userName"`
}
