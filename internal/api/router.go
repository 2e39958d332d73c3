package api

import (
	"net/http"
	"strings"
	"time"

	"arenapix-be/internal/config"
	"arenapix-be/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	User    *UserHandler
	Product *ProductHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Team    *TeamHandler
	Pix     *PixHandler
	Webhook http.Handler
}

func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit(cfg.InternalAuthKey))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Provider callbacks use raw body for signature verification, so the
	// handler is mounted as plain net/http.
	r.Any("/webhook/openpix", gin.WrapH(h.Webhook))

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.User.Register)
		auth.POST("/login", h.User.Login)
	}

	products := r.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
	}

	authed := r.Group("/", middleware.RequireUser())
	{
		authed.GET("/me", h.User.Me)
		authed.PUT("/me/payment-settings", h.User.SavePaymentSettings)

		seller := authed.Group("/seller")
		{
			seller.GET("/balance", h.User.Balance)
			seller.POST("/withdraw", h.User.Withdraw)
			seller.POST("/products", h.Product.Create)
			seller.PUT("/products/:id", h.Product.Update)
			seller.DELETE("/products/:id", h.Product.Delete)
		}

		cart := authed.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.POST("/items", h.Cart.Add)
			cart.PUT("/items/:productId", h.Cart.Update)
			cart.DELETE("/items/:productId", h.Cart.Remove)
			cart.DELETE("", h.Cart.Clear)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", h.Order.Checkout)
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.Get)
			orders.POST("/:id/sync", h.Order.Sync)
		}

		teams := authed.Group("/teams")
		{
			teams.POST("", h.Team.Create)
			teams.GET("", h.Team.ListMine)
			teams.GET("/:id", h.Team.Get)
			teams.PUT("/:id", h.Team.Update)
			teams.DELETE("/:id", h.Team.Delete)

			teams.POST("/:id/players", h.Team.AddPlayer)
			teams.GET("/:id/players", h.Team.ListPlayers)
			teams.PUT("/:id/players/:playerId", h.Team.UpdatePlayer)
			teams.DELETE("/:id/players/:playerId", h.Team.RemovePlayer)

			teams.POST("/:id/games", h.Team.AddGame)
			teams.GET("/:id/games", h.Team.ListGames)
			teams.PUT("/:id/games/:gameId", h.Team.UpdateGame)
			teams.DELETE("/:id/games/:gameId", h.Team.RemoveGame)
		}

		admin := authed.Group("/admin", requireAdmin())
		{
			admin.GET("/subaccounts", h.Pix.ListSubAccounts)
			admin.POST("/subaccounts", h.Pix.CreateSubAccount)
			admin.PUT("/subaccounts/:pixKey", h.Pix.UpdateSubAccount)
			admin.DELETE("/subaccounts/:pixKey", h.Pix.DeleteSubAccount)
			admin.GET("/charges/:id", h.Pix.GetCharge)
			admin.GET("/transactions", h.Pix.ListTransactions)
		}
	}

	return r
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowedOrigins == "" || allowedOrigins == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	return cors.New(cfg)
}
