package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/simplewish/internal/service"
)

func SetupRouter(
	auth service.AuthInteractor,
	cookieName string,
	authController *AuthController,
	eventController *EventController,
	listController *ListController,
	commentController *CommentController,
) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:3000",
	}
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.ExposeHeaders = []string{"Set-Cookie"}
	router.Use(cors.New(config))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.POST("/auth/logout", authController.Logout)

	authed := api.Group("")
	authed.Use(RequireAuth(auth, cookieName))

	authed.GET("/auth/me", authController.Me)
	authed.POST("/auth/password", authController.ChangePassword)
	authed.DELETE("/auth/account", authController.DeleteAccount)

	events := authed.Group("/events")
	events.GET("", eventController.ListEvents)
	events.POST("/create", eventController.CreateEvent)
	events.POST("/join", eventController.JoinByCode)
	events.GET("/:eventID", eventController.GetEvent)
	events.PUT("/:eventID", eventController.EditEvent)
	events.DELETE("/:eventID", eventController.DeleteEvent)
	events.POST("/:eventID/join", eventController.Join)
	events.POST("/:eventID/leave", eventController.Leave)
	events.POST("/:eventID/kick", eventController.Kick)
	events.POST("/:eventID/role", eventController.ChangeRole)
	events.POST("/:eventID/profile", eventController.UpdateProfile)

	events.GET("/:eventID/lists/:attendeeID/items", listController.ListItems)
	events.POST("/:eventID/lists/:attendeeID/items", listController.CreateItem)
	events.DELETE("/:eventID/items/:itemID", listController.DeleteItem)
	events.POST("/:eventID/items/:itemID/give", listController.Give)
	events.POST("/:eventID/items/:itemID/dontgive", listController.DontGive)

	events.GET("/:eventID/comments", commentController.List)
	events.POST("/:eventID/comments", commentController.Post)
	events.GET("/:eventID/lists/:attendeeID/comments", commentController.List)
	events.POST("/:eventID/lists/:attendeeID/comments", commentController.Post)
	events.DELETE("/:eventID/comments/:commentID", commentController.Delete)

	return router
}
