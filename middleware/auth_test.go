package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeDecoder maps accepted tokens to user ids.
type fakeDecoder map[string]uint

func (f fakeDecoder) Decode(token string) (uint, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func guardedRouter(db *gorm.DB, tokens TokenDecoder) *gin.Engine {
	r := gin.New()
	r.GET("/me", Authenticate(tokens), LoadUser(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
	})
	r.GET("/admin", Authenticate(tokens), LoadUser(db), RequireSuperuser(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuards(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@example.com", false)
	admin := testutil.CreateUser(t, db, "admin@example.com", true)
	inactive := testutil.CreateUser(t, db, "off@example.com", false)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	r := guardedRouter(db, fakeDecoder{
		"user":     user.ID,
		"admin":    admin.ID,
		"inactive": inactive.ID,
		"ghost":    9999,
	})

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic user", http.StatusUnauthorized},
		{"empty bearer", "/me", "Bearer ", http.StatusUnauthorized},
		{"undecodable token", "/me", "Bearer nope", http.StatusForbidden},
		{"unknown user", "/me", "Bearer ghost", http.StatusNotFound},
		{"inactive user", "/me", "Bearer inactive", http.StatusBadRequest},
		{"active user", "/me", "Bearer user", http.StatusOK},
		{"lowercase scheme", "/me", "bearer user", http.StatusOK},
		{"not superuser", "/admin", "Bearer user", http.StatusForbidden},
		{"superuser", "/admin", "Bearer admin", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.path, tc.header)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}

	w := get(r, "/me", "")
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = get(r, "/me", "Bearer user")
	assert.JSONEq(t, `{"email":"user@example.com"}`, w.Body.String())
}
