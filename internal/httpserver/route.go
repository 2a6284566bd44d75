package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/login", d.AuthHandler.Login)

	authMW := middleware.NewAdminMiddleware(d.JWTSecret)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := products.Group("", authMW.RequireAdmin)
	admin.POST("", d.ProductHandler.CreateProduct)
	admin.PUT("/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)
	admin.PATCH("/:id/quantity", d.ProductHandler.UpdateQuantity)
}
