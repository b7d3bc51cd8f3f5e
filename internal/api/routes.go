package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/query", handler.Query)
		api.GET("/listings", handler.GetListings)
		api.POST("/listings", handler.CreateListings)
		api.GET("/health", handler.Health)
	}
}
