// Package accounts owns user registration, password checks and profile
// management. Passwords are stored as bcrypt hashes and never leave this
// package.
package accounts

import (
	"mime/multipart"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/uploads"
	"github.com/gamegalaxy/exchange/utils"
)

type Store interface {
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	// Create inserts a user; unique-index violations come back as Conflict.
	Create(user *models.User) error
	Save(user *models.User) error
}

type Service struct {
	store  Store
	images uploads.ImageStore
}

func NewService(store Store, images uploads.ImageStore) *Service {
	return &Service{store: store, images: images}
}

// Register creates a new account. Username and email are each globally
// unique and reported with distinct conflict messages.
func (s *Service) Register(input models.RegisterInput) (*models.User, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	taken, err := s.store.UsernameExists(input.Username)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if taken {
		return nil, apperr.New(apperr.Conflict, "Username already exists.")
	}
	taken, err = s.store.EmailExists(input.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if taken {
		return nil, apperr.New(apperr.Conflict, "Email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to register user", err)
	}

	user := models.User{
		Username:         input.Username,
		Password:         string(hash),
		Email:            input.Email,
		PhoneNumber:      input.PhoneNumber,
		Address:          input.Address,
		RegistrationDate: time.Now().UTC(),
	}
	if err := s.store.Create(&user); err != nil {
		// Concurrent register with the same username or email; the unique
		// index already decided the winner.
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.New(apperr.Conflict, "Username already exists.")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to register user", err)
	}
	return &user, nil
}

// Authenticate verifies a username/password pair and records the login
// time. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *Service) Authenticate(input models.LoginInput) (*models.User, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.store.ByUsername(input.Username)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid username or password.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid username or password.")
	}

	now := time.Now().UTC()
	user.LastLoginDate = &now
	if err := s.store.Save(user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return user, nil
}

// Profile returns the caller's own profile view.
func (s *Service) Profile(userID uint) (*models.Profile, error) {
	user, err := s.store.ByID(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "User not found.")
	}
	return &models.Profile{
		Username:          user.Username,
		Email:             user.Email,
		PhoneNumber:       user.PhoneNumber,
		Address:           user.Address,
		ProfilePictureURL: user.ProfilePictureURL,
	}, nil
}

// UpdateProfile applies a partial profile patch plus an optional new
// profile picture. It reports whether anything actually changed so the
// handler can answer 204 for a no-op request.
func (s *Service) UpdateProfile(userID uint, input models.UpdateProfileInput, picture *multipart.FileHeader) (bool, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return false, err
	}

	user, err := s.store.ByID(userID)
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if user == nil {
		return false, apperr.New(apperr.NotFound, "User not found.")
	}

	changed := false
	if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
		taken, err := s.store.EmailExists(*input.Email)
		if err != nil {
			return false, apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
		if taken {
			return false, apperr.New(apperr.Conflict, "Email already exists.")
		}
		user.Email = *input.Email
		changed = true
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, apperr.Wrap(apperr.Internal, "Failed to update profile", err)
		}
		user.Password = string(hash)
		changed = true
	}
	if input.PhoneNumber != nil && *input.PhoneNumber != user.PhoneNumber {
		user.PhoneNumber = *input.PhoneNumber
		changed = true
	}
	if input.Address != nil && *input.Address != user.Address {
		user.Address = *input.Address
		changed = true
	}
	if picture != nil {
		url, err := s.images.Save(userID, picture, "profile_pictures")
		if err != nil {
			return false, err
		}
		user.ProfilePictureURL = url
		changed = true
	}

	if !changed {
		return false, nil
	}
	if err := s.store.Save(user); err != nil {
		return false, apperr.Wrap(apperr.Internal, "Failed to update profile", err)
	}
	return true, nil
}
