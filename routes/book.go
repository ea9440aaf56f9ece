package routes

import (
	"github.com/gin-gonic/gin"
	bookControllers "github.com/junaidrashid-git/bookmarket-api/controllers/book"
)

// SetupBookRoutes registers all “/books/*” endpoints. Reads are public; writes
// need a superuser.
func SetupBookRoutes(api *gin.RouterGroup, d Deps) {
	books := api.Group("/books")
	{
		books.GET("/", bookControllers.GetBooks(d.DB))
		books.GET("/:id", bookControllers.GetBookByID(d.DB))

		admin := books.Group("", d.superuser()...)
		admin.POST("/", bookControllers.CreateBook(d.DB))
		admin.PATCH("/:id", bookControllers.UpdateBook(d.DB))
		admin.DELETE("/:id", bookControllers.DeleteBook(d.DB))
	}
}
