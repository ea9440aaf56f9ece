package routes

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/bookmarket-api/auth"
	orderControllers "github.com/junaidrashid-git/bookmarket-api/controllers/order"
	"github.com/junaidrashid-git/bookmarket-api/middleware"
	"github.com/junaidrashid-git/bookmarket-api/notify"
	"gorm.io/gorm"
)

// Deps carries everything the route groups hand to their controllers.
type Deps struct {
	DB                   *gorm.DB
	Tokens               *auth.TokenIssuer
	Notifier             auth.Notifier
	Orders               *orderControllers.Service
	Hub                  *notify.Hub
	APIPrefix            string
	FrontendDir          string
	AllowSuperuserSignup bool
}

// authenticated resolves the bearer token to an active user.
func (d Deps) authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.Authenticate(d.Tokens), middleware.LoadUser(d.DB)}
}

// superuser additionally requires the superuser flag.
func (d Deps) superuser() []gin.HandlerFunc {
	return append(d.authenticated(), middleware.RequireSuperuser())
}

// SetupRoutes is the single entry‐point that wires up every route group under
// the API prefix, plus health and the static frontend.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group(d.APIPrefix)

	// 1️⃣ Public auth routes (register, token) and /auth/me
	SetupAuthRoutes(api, d)

	// 2️⃣ Catalog: public reads, superuser writes
	SetupBookRoutes(api, d)

	// 3️⃣ Orders (JWT‐protected)
	SetupOrderRoutes(api, d)

	// 4️⃣ Admin routes (superuser)
	SetupAdminRoutes(api, d)

	r.GET("/health", healthHandler(d.DB))
	setupFrontend(r, d.FrontendDir)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// setupFrontend serves a single-page frontend from dir when the directory
// exists. No frontend ships with the server; FRONTEND_DIR points at one.
func setupFrontend(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Printf("ℹ️ Frontend directory %q not found, static files disabled", dir)
		return
	}
	r.Static("/static", dir)
	index := filepath.Join(dir, "index.html")
	r.GET("/", func(c *gin.Context) {
		c.File(index)
	})
}
