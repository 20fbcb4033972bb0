package router

import (
	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/auth"
	"github.com/AparicioQA/RedditClone/internal/handlers"
	"github.com/AparicioQA/RedditClone/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, tokens *auth.Service) {
	// Handlers
	authHandler := handlers.NewAuthHandler(tokens)
	subredditHandler := handlers.NewSubredditHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()

	api := r.Group("/api")
	api.Use(middleware.LoadUser(tokens))

	// Public routes (reads honor an optional bearer token for userVote /
	// isJoined)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/subreddits", subredditHandler.List)
	api.GET("/subreddits/:id", subredditHandler.Get)
	api.GET("/subreddits/:id/posts", subredditHandler.Posts)

	api.GET("/posts", postHandler.List)
	api.GET("/posts/:id", postHandler.Get)
	api.GET("/posts/:id/comments", postHandler.Comments)

	api.GET("/comments/:id", commentHandler.Get)

	api.GET("/users/:username", userHandler.Get)
	api.GET("/users/:username/posts", userHandler.Posts)
	api.GET("/users/:username/comments", userHandler.Comments)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/subreddits", subredditHandler.Create)
		authorized.POST("/subreddits/:id/join", subredditHandler.Join)
		authorized.DELETE("/subreddits/:id/leave", subredditHandler.Leave)

		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/vote", voteHandler.VotePost)

		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/vote", voteHandler.VoteComment)
	}
}
