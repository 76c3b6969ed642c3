package models

import "time"

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"unique;not null" json:"username" validate:"required,min=3,max=50"`
	Password          string     `gorm:"not null" json:"-" validate:"required,min=6"`
	Email             string     `gorm:"unique;not null" json:"email" validate:"required,email"`
	RegistrationDate  time.Time  `json:"registrationDate"`
	LastLoginDate     *time.Time `json:"lastLoginDate"`
	ProfilePictureURL string     `json:"profilePictureUrl"`
	PhoneNumber       string     `json:"phoneNumber"`
	Address           string     `json:"address"`
}

// RegisterInput - used to validate registration
type RegisterInput struct {
	Username    string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" form:"password" validate:"required,min=6,max=100"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Address     string `json:"address" form:"address"`
}

// LoginInput - used to validate login
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshInput carries the refresh grant presented on POST /user/refresh.
type RefreshInput struct {
	Username     string `json:"username" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileInput - partial profile update, nil means "leave unchanged"
type UpdateProfileInput struct {
	Email       *string `form:"email" validate:"omitempty,email"`
	Password    *string `form:"password" validate:"omitempty,min=6,max=100"`
	PhoneNumber *string `form:"phoneNumber"`
	Address     *string `form:"address"`
}

// Profile is the read model returned by GET /user/profile.
type Profile struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	Address           string `json:"address"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}
