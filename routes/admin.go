package routes

import (
	"github.com/gin-gonic/gin"
	bookControllers "github.com/junaidrashid-git/bookmarket-api/controllers/book"
	orderControllers "github.com/junaidrashid-git/bookmarket-api/controllers/order"
	userControllers "github.com/junaidrashid-git/bookmarket-api/controllers/user"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires a superuser.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	adminGroup := api.Group("/admin", d.superuser()...)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.PATCH("/users/:id", userControllers.UpdateUser(d.DB))

		// ─────────── Catalog Spreadsheet ───────────
		bookAdmin := adminGroup.Group("/books")
		{
			bookAdmin.GET("/export", bookControllers.ExportBooksToExcel(d.DB))
			bookAdmin.POST("/import", bookControllers.ImportBooksFromExcel(d.DB))
		}

		// ─────────── Live Order Feed ───────────
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler(d.Hub))
	}
}
