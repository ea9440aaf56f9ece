package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/middleware"
	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/junaidrashid-git/bookmarket-api/notify"
	"github.com/junaidrashid-git/bookmarket-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authEnv struct {
	db       *gorm.DB
	tokens   *TokenIssuer
	recorder *testutil.Recorder
	router   *gin.Engine
}

func newAuthEnv(t *testing.T, allowSuperuser bool) *authEnv {
	t.Helper()
	db := testutil.NewDB(t)
	tokens, err := NewTokenIssuer("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	rec := &testutil.Recorder{}

	r := gin.New()
	r.POST("/auth/register", RegisterHandler(db, rec, allowSuperuser))
	r.POST("/auth/token", TokenHandler(db, tokens))
	r.GET("/auth/me", middleware.Authenticate(tokens), middleware.LoadUser(db), MeHandler)
	return &authEnv{db: db, tokens: tokens, recorder: rec, router: r}
}

func (e *authEnv) register(body gin.H) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *authEnv) login(username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	env := newAuthEnv(t, true)

	w := env.register(gin.H{"email": "test@example.com", "password": "password123", "full_name": "Test User"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "Test User", body["full_name"])
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, false, body["is_superuser"])
	assert.NotContains(t, body, "hashed_password")
	assert.NotContains(t, w.Body.String(), "password123")

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "test@example.com").First(&stored).Error)
	assert.True(t, VerifyPassword("password123", stored.HashedPassword))

	msgs := env.recorder.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.KindUserRegistered, msgs[0].Kind)
	assert.Equal(t, "test@example.com", msgs[0].Recipient)

	w = env.register(gin.H{"email": "test@example.com", "password": "another"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, env.recorder.Messages(), 1)
}

func TestRegisterValidation(t *testing.T) {
	env := newAuthEnv(t, true)
	for name, body := range map[string]gin.H{
		"bad email":        {"email": "not-an-email", "password": "x"},
		"missing password": {"email": "a@example.com"},
		"missing email":    {"password": "x"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, env.register(body).Code)
		})
	}
}

func TestRegisterSuperuserFlag(t *testing.T) {
	allowed := newAuthEnv(t, true)
	w := allowed.register(gin.H{"email": "root@example.com", "password": "x", "is_superuser": true})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"is_superuser":true`)

	denied := newAuthEnv(t, false)
	w = denied.register(gin.H{"email": "root@example.com", "password": "x", "is_superuser": true})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"is_superuser":false`)
}

func TestTokenAndMe(t *testing.T) {
	env := newAuthEnv(t, true)
	require.Equal(t, http.StatusCreated, env.register(gin.H{"email": "me@example.com", "password": "pw"}).Code)

	w := env.login("me@example.com", "pw")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"me@example.com"`)

	assert.Equal(t, http.StatusBadRequest, env.login("me@example.com", "wrong").Code)
	assert.Equal(t, http.StatusBadRequest, env.login("nobody@example.com", "pw").Code)
}

func TestTokenRejectsInactiveUser(t *testing.T) {
	env := newAuthEnv(t, true)
	w := env.register(gin.H{"email": "off@example.com", "password": "pw", "is_active": false})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.login("off@example.com", "pw")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Inactive user")
}
