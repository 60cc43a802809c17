package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ListingHandler *ListingHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Backend is running! Use /api/register (POST), /api/login (POST), or /api/products")
	})

	api := e.Group("/api")
	api.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "API is running!"})
	})

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)

	api.GET("/products", d.ListingHandler.GetListings)
	api.GET("/products/search", d.SearchHandler.Search)

	authMW := middleware.NewBearerAuth(d.JWTSecret)

	private := api.Group("/products", authMW.RequireAuth)
	private.POST("", d.ListingHandler.CreateListing)
	private.PUT("/:id", d.ListingHandler.UpdateListing)
	private.DELETE("/:id", d.ListingHandler.DeleteListing)
}
