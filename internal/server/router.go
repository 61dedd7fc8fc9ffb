package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"auction-house/internal/config"
	handler "auction-house/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(sessionCfg config.SessionConfig, userService handler.UserServiceInterface, auctionService handler.AuctionServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	// Session cookie must survive cross-origin browser requests
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := memstore.NewStore(sessionCfg.Secret)
	router.Use(sessions.Sessions(sessionCfg.CookieName, store))

	userHandler := handler.NewUserHandler(userService)
	auctionHandler := handler.NewAuctionHandler(auctionService)

	router.POST("/create-user", userHandler.CreateUserHandler)
	router.POST("/login", userHandler.LoginHandler)
	router.GET("/logout", userHandler.LogoutHandler)

	authed := router.Group("", LoginRequired)
	{
		authed.POST("/create-auction", auctionHandler.CreateAuctionHandler)
		authed.GET("/get-all-auctions", auctionHandler.ListAuctionsHandler)
		authed.POST("/auctions/:auction_id/bids", auctionHandler.PlaceBidHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  http.StatusNotFound,
			"message": "NOT FOUND" + c.Request.URL.String(),
		})
	})

	return router
}
