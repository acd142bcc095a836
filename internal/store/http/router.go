package http

import "github.com/gin-gonic/gin"

func SetupRouter(handler *StoreHandler, authMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/store/items", handler.ListItems)

	authed := router.Group("/api", authMiddleware)
	authed.POST("/store/purchase", handler.Purchase)
	authed.GET("/user/stats", handler.GetUserStats)

	return router
}
