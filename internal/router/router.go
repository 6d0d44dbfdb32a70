package router

import (
	"peerlink/internal/handlers"
	"peerlink/internal/middleware"
	"peerlink/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	// Services
	posts := services.NewPostService(db)
	replies := services.NewReplyService(db)
	reviews := services.NewReviewService(db)
	registry := services.NewRegistryService(db)
	notifier := services.NewNotificationService(db)

	// Handlers
	postHandler := handlers.NewPostHandler(posts)
	replyHandler := handlers.NewReplyHandler(replies, posts, notifier)
	reviewHandler := handlers.NewReviewHandler(reviews, registry, posts, replies, notifier)
	trustHandler := handlers.NewTrustHandler(registry)
	notificationHandler := handlers.NewNotificationHandler(notifier)

	r.Use(middleware.LoadUser())

	// Read routes: identity is optional, it only narrows visibility.
	r.GET("/posts", postHandler.List)
	r.GET("/posts/:id", postHandler.Detail)
	r.GET("/posts/:id/replies", replyHandler.ListTopLevel)
	r.GET("/replies/:id/replies", replyHandler.ListNested)
	r.GET("/reviews/:id", reviewHandler.Detail)
	r.GET("/reviews/:id/history", reviewHandler.History)
	r.GET("/reviews/:id/feedback", reviewHandler.ListFeedback)
	r.GET("/targets/:kind/:id/reviews", reviewHandler.ListForTarget)

	// Write routes require the identity header.
	authorized := r.Group("/")
	authorized.Use(middleware.IdentityRequired())
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)

		authorized.POST("/posts/:id/replies", replyHandler.Create)
		authorized.PUT("/replies/:id", replyHandler.Update)
		authorized.DELETE("/replies/:id", replyHandler.Delete)
		authorized.POST("/replies/:id/like", replyHandler.Like)
		authorized.DELETE("/replies/:id/like", replyHandler.Unlike)

		authorized.POST("/reviews", reviewHandler.Create)
		authorized.PUT("/reviews/:id", reviewHandler.Update)
		authorized.POST("/reviews/:id/feedback", reviewHandler.AddFeedback)

		authorized.POST("/trust/:reviewer", trustHandler.AddTrust)
		authorized.DELETE("/trust/:reviewer", trustHandler.RemoveTrust)
		authorized.PUT("/weights/:reviewer", trustHandler.SetWeight)
		authorized.PUT("/ratings/:reviewer", trustHandler.SetRating)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
	}
}
