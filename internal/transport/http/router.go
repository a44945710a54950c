package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/sncandles/storefront/internal/handlers"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CartHandler    *handlers.CartHandler
	ContactHandler *handlers.ContactHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)

	api.GET("/cart", d.CartHandler.GetCart)
	api.POST("/cart/add", d.CartHandler.AddToCart)
	api.POST("/checkout", d.CartHandler.PlaceOrder)

	api.POST("/contact", d.ContactHandler.Contact)
	api.POST("/subscribe", d.ContactHandler.Subscribe)

	api.GET("/search", d.SearchHandler.Search)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := api.Group("/products", d.AuthHandler.RequireAuth)
	admin.POST("", d.ProductHandler.CreateProduct)
	admin.PATCH("/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
