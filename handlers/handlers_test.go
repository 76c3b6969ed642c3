package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamegalaxy/exchange/accounts"
	"github.com/gamegalaxy/exchange/auth"
	"github.com/gamegalaxy/exchange/catalog"
	"github.com/gamegalaxy/exchange/handlers"
	"github.com/gamegalaxy/exchange/reporting"
	"github.com/gamegalaxy/exchange/reviews"
	"github.com/gamegalaxy/exchange/wishlist"
)

type imageStub struct{}

func (imageStub) Save(ownerID uint, file *multipart.FileHeader, folder string) (string, error) {
	return "/uploads/stub.png", nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := auth.NewManager(auth.NewMemoryStore(), auth.Config{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})

	wishSvc := wishlist.NewService(wishlist.NewMemoryStore())
	h := handlers.New(
		accounts.NewService(accounts.NewMemoryStore(), imageStub{}),
		sessions,
		catalog.NewService(catalog.NewMemoryStore(), wishSvc, imageStub{}),
		wishSvc,
		reviews.NewService(reviews.NewMemoryStore()),
		reporting.NewService(reporting.NewMemoryStore()),
	)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, username, email string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/user/register", "", gin.H{
		"username": username,
		"password": "hunter2x",
		"email":    email,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, r *gin.Engine, username string) map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{
		"username": username,
		"password": "hunter2x",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pair map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{"/games/all", "/user/profile", "/wishlist", "/sales/total"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodGet, "/games/all", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")
}

func TestRegisterAndLoginFlow(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")

	pair := login(t, r, "alice")
	for _, key := range []string{"token", "tokenExpiration", "refreshToken", "refreshTokenExpiration"} {
		assert.Contains(t, pair, key)
	}

	w := doJSON(t, r, http.MethodGet, "/user/profile", pair["token"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/user/register", "", gin.H{
		"username": "alice", "password": "hunter2x", "email": "other@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists.")
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{
		"username": "alice", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
}

func TestRefreshRotatesPair(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")
	pair := login(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/user/refresh", "", gin.H{
		"username": "alice", "refreshToken": pair["refreshToken"],
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rotated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rotated))
	assert.NotEqual(t, pair["refreshToken"], rotated["refreshToken"])

	// The displaced refresh token is dead.
	w = doJSON(t, r, http.MethodPost, "/user/refresh", "", gin.H{
		"username": "alice", "refreshToken": pair["refreshToken"],
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token.")
}

func TestLogoutCutsRefresh(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")
	pair := login(t, r, "alice")
	token := pair["token"].(string)

	w := doJSON(t, r, http.MethodPost, "/user/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/user/refresh", "", gin.H{
		"username": "alice", "refreshToken": pair["refreshToken"],
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Access tokens are stateless; the one in hand still works until expiry.
	w = doJSON(t, r, http.MethodGet, "/user/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBrowseEmptyCatalog(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")
	pair := login(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/games/all", pair["token"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Games      []json.RawMessage `json:"games"`
		TotalGames int64             `json:"totalGames"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Games)
	assert.Zero(t, body.TotalGames)
}

func TestGetGameBadIDIsNotFound(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")
	pair := login(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/games/abc", pair["token"].(string), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Game not found.")
}

func TestReviewRatingOutOfRangeRejected(t *testing.T) {
	r := newRouter(t)
	registerUser(t, r, "alice", "alice@example.com")
	pair := login(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/games/1/reviews", pair["token"].(string), gin.H{
		"rating": 6, "comment": "too good",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
