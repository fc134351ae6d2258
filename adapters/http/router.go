package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the route table. All portfolio routes live under one
// authenticated group; search and health are public.
func SetupRouter(
	authHandler *AuthHandler,
	portfolioHandler *PortfolioHandler,
	searchHandler *SearchHandler,
	authMiddleware gin.HandlerFunc,
	extra ...gin.HandlerFunc,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(extra...)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/auth/login", authHandler.Login)
		api.GET("/portfolios/search", searchHandler.SearchPortfolios)

		mine := api.Group("/portfolio")
		mine.Use(authMiddleware)
		{
			mine.GET("/", portfolioHandler.GetPortfolio)
			mine.POST("/images", portfolioHandler.UploadImage)

			mine.POST("/profile", portfolioHandler.CreateProfile)
			mine.PUT("/profile", portfolioHandler.UpdateProfile)
			mine.PUT("/contactinfo", portfolioHandler.UpdateContactInfo)
			mine.PUT("/about", portfolioHandler.UpdateAbout)
			mine.POST("/skills", portfolioHandler.ReplaceSkills)

			mine.POST("/timeline", portfolioHandler.AddTimelineEntry)
			mine.PUT("/timeline/:id", portfolioHandler.UpdateTimelineEntry)
			mine.DELETE("/timeline/:id", portfolioHandler.DeleteTimelineEntry)

			mine.POST("/videos", portfolioHandler.AddVideo)
			mine.PUT("/videos/:id", portfolioHandler.UpdateVideo)
			mine.DELETE("/videos/:id", portfolioHandler.DeleteVideo)

			mine.POST("/collections", portfolioHandler.CreateCollection)
			mine.PUT("/collections/:id", portfolioHandler.UpdateCollection)
			mine.DELETE("/collections/:id", portfolioHandler.DeleteCollection)
			mine.DELETE("/collections/:id/photos/:photo_id", portfolioHandler.DeleteCollectionPhoto)
		}
	}

	return router
}
