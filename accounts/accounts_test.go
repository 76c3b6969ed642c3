package accounts

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

type fakeImages struct {
	url  string
	err  error
	used int
}

func (f *fakeImages) Save(ownerID uint, file *multipart.FileHeader, folder string) (string, error) {
	f.used++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newService(t *testing.T) (*Service, *MemoryStore, *fakeImages) {
	t.Helper()
	store := NewMemoryStore()
	images := &fakeImages{url: "/uploads/profile_pictures/pic.png"}
	return NewService(store, images), store, images
}

func register(t *testing.T, svc *Service, username, email string) *models.User {
	t.Helper()
	user, err := svc.Register(models.RegisterInput{
		Username: username,
		Password: "hunter2x",
		Email:    email,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store, _ := newService(t)

	user := register(t, svc, "alice", "alice@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.RegistrationDate.IsZero())

	stored, err := store.ByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2x", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2x")))
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(models.RegisterInput{Username: "alice", Password: "hunter2x", Email: "other@example.com"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
	assert.Equal(t, "Username already exists.", apperr.Message(err))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(models.RegisterInput{Username: "bob", Password: "hunter2x", Email: "alice@example.com"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
	assert.Equal(t, "Email already exists.", apperr.Message(err))
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Register(models.RegisterInput{Username: "al", Password: "short", Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestAuthenticate(t *testing.T) {
	svc, store, _ := newService(t)
	created := register(t, svc, "alice", "alice@example.com")

	user, err := svc.Authenticate(models.LoginInput{Username: "alice", Password: "hunter2x"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	stored, err := store.ByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginDate)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Authenticate(models.LoginInput{Username: "alice", Password: "wrongpass"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Unauthenticated))
	assert.Equal(t, "Invalid username or password.", apperr.Message(err))
}

func TestAuthenticateUnknownUserSameMessage(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Authenticate(models.LoginInput{Username: "ghost", Password: "hunter2x"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Unauthenticated))
	// Same message as a wrong password; no account enumeration.
	assert.Equal(t, "Invalid username or password.", apperr.Message(err))
}

func TestProfileNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Profile(42)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, store, _ := newService(t)
	user := register(t, svc, "alice", "alice@example.com")

	phone := "555-0101"
	changed, err := svc.UpdateProfile(user.ID, models.UpdateProfileInput{PhoneNumber: &phone}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := store.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0101", stored.PhoneNumber)
	assert.Equal(t, "alice@example.com", stored.Email) // untouched
}

func TestUpdateProfileNoChangesReportsFalse(t *testing.T) {
	svc, _, _ := newService(t)
	user := register(t, svc, "alice", "alice@example.com")

	changed, err := svc.UpdateProfile(user.ID, models.UpdateProfileInput{}, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	// Re-submitting the current values is also a no-op.
	email := "alice@example.com"
	changed, err = svc.UpdateProfile(user.ID, models.UpdateProfileInput{Email: &email}, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "alice", "alice@example.com")
	bob := register(t, svc, "bob", "bob@example.com")

	email := "alice@example.com"
	_, err := svc.UpdateProfile(bob.ID, models.UpdateProfileInput{Email: &email}, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	svc, _, _ := newService(t)
	user := register(t, svc, "alice", "alice@example.com")

	newPass := "correcthorse"
	changed, err := svc.UpdateProfile(user.ID, models.UpdateProfileInput{Password: &newPass}, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = svc.Authenticate(models.LoginInput{Username: "alice", Password: "hunter2x"})
	require.Error(t, err)
	_, err = svc.Authenticate(models.LoginInput{Username: "alice", Password: "correcthorse"})
	require.NoError(t, err)
}

func TestUpdateProfilePicture(t *testing.T) {
	svc, store, images := newService(t)
	user := register(t, svc, "alice", "alice@example.com")

	changed, err := svc.UpdateProfile(user.ID, models.UpdateProfileInput{}, &multipart.FileHeader{Filename: "pic.png"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, images.used)

	stored, err := store.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profile_pictures/pic.png", stored.ProfilePictureURL)
}

func TestUpdateProfileUploadFailureAborts(t *testing.T) {
	svc, store, images := newService(t)
	images.err = apperr.New(apperr.UploadFailed, "Failed to upload picture")
	user := register(t, svc, "alice", "alice@example.com")

	phone := "555-0101"
	_, err := svc.UpdateProfile(user.ID, models.UpdateProfileInput{PhoneNumber: &phone}, &multipart.FileHeader{Filename: "pic.png"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.UploadFailed))

	stored, err := store.ByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PhoneNumber) // nothing persisted
}

func TestProfileReturnsView(t *testing.T) {
	svc, _, _ := newService(t)
	user := register(t, svc, "alice", "alice@example.com")

	profile, err := svc.Profile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
}
