package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Catalog   *CatalogHandler
	Cart      *CartHandler
	Orders    *OrderHandler
	Customers *CustomerHandler
	Export    *ExportHandler

	JWTSecret string
	MediaDir  string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if d.MediaDir != "" {
		r.Static("/media", d.MediaDir)
	}

	// публичный каталог
	r.GET("/categories", d.Catalog.ListCategories)
	r.GET("/categories/:slug", d.Catalog.GetCategory)
	r.GET("/products/latest", d.Catalog.LatestProducts)
	r.GET("/products/:kind/:slug", d.Catalog.GetProduct)

	// корзина доступна и анонимно, токен лишь привязывает владельца
	carts := r.Group("/carts", AuthOptional(d.JWTSecret))
	{
		carts.POST("/anonymous", d.Cart.CreateAnonymousCart)
		carts.GET("/:id", d.Cart.GetCart)
		carts.POST("/:id/items", d.Cart.AddItem)
		carts.PATCH("/:id/items", d.Cart.ChangeQuantity)
		carts.DELETE("/:id/items/:kind/:productID", d.Cart.RemoveItem)
		carts.POST("/:id/recalculate", d.Cart.Recalculate)
	}

	// всё ниже требует аутентификации
	auth := r.Group("/", AuthRequired(d.JWTSecret))
	{
		auth.GET("/cart", d.Cart.CurrentCart)
		auth.POST("/carts/:id/checkout", d.Orders.PlaceOrder)

		auth.GET("/orders", d.Orders.ListOrders)
		auth.GET("/orders/:id", d.Orders.GetOrder)

		auth.GET("/profile", d.Customers.Profile)
		auth.PUT("/profile", d.Customers.UpdateContact)
	}

	admin := r.Group("/admin", AuthRequired(d.JWTSecret), StaffRequired())
	{
		admin.POST("/categories", d.Catalog.CreateCategory)
		admin.PUT("/categories/:id", d.Catalog.UpdateCategory)
		admin.DELETE("/categories/:id", d.Catalog.DeleteCategory)

		admin.GET("/products/export", d.Export.ExportProducts)
		admin.POST("/products/:kind", d.Catalog.CreateProduct)
		admin.PATCH("/products/:kind/:id", d.Catalog.UpdateProduct)
		admin.DELETE("/products/:kind/:id", d.Catalog.DeleteProduct)

		admin.GET("/orders", d.Orders.ListOrders)
		admin.POST("/orders/:id/status", d.Orders.AdvanceStatus)
	}

	return r
}
