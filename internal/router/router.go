package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pizzaria-dev/pizzaria/internal/auth"
	"github.com/pizzaria-dev/pizzaria/internal/config"
	"github.com/pizzaria-dev/pizzaria/internal/handlers"
	"github.com/pizzaria-dev/pizzaria/internal/middleware"
	"github.com/pizzaria-dev/pizzaria/internal/types"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	maker := auth.NewTokenMaker(cfg)

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handlers.Register)
			authRoutes.POST("/login", handlers.Login(maker, cfg))
			authRoutes.POST("/login-form", handlers.LoginForm(maker, cfg))
			authRoutes.GET("/refresh", middleware.AuthMiddleware(maker), handlers.Refresh(maker, cfg))
			authRoutes.GET("/me", middleware.AuthMiddleware(maker), handlers.Me)
		}

		orders := api.Group("/orders", middleware.AuthMiddleware(maker))
		{
			orders.POST("/create", handlers.CreateOrder)
			orders.POST("/cancel/:id", handlers.CancelOrder)
			orders.POST("/finalize/:id", handlers.FinalizeOrder)
			orders.GET("/list", handlers.ListOrders)
			orders.POST("/add-item/:order_id", handlers.AddOrderItem)
			orders.POST("/remove-item/:item_id", handlers.RemoveOrderItem)
			orders.GET("/mine", handlers.MyOrders)
			orders.GET("/:id", handlers.GetOrder)
		}
	}

	return r
}
