package api

import (
	"Guildboard/internal/api/middleware"
	"Guildboard/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		communityGroup := apiGroup.Group("/community")
		{
			communityGroup.GET("/categories", group.CategoryHandler.ListCategories)

			// 未登录也可以浏览，viewer 标注字段为零值
			feedGroup := communityGroup.Group("")
			feedGroup.Use(middleware.AuthOptionalMiddleware())
			{
				feedGroup.GET("/feed", group.FeedHandler.FetchFeed)
				feedGroup.GET("/post/:post_id", group.PostHandler.GetPost)
				feedGroup.GET("/post/:post_id/comments", group.CommentHandler.ListComments)
			}

			authGroup := communityGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/post", group.PostHandler.CreatePost)
				authGroup.PUT("/post/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/post/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/post/:post_id/pin", group.PostHandler.TogglePin)

				authGroup.POST("/comment", group.CommentHandler.CreateComment)
				authGroup.PUT("/comment/:comment_id", group.CommentHandler.UpdateComment)
				authGroup.DELETE("/comment/:comment_id", group.CommentHandler.DeleteComment)

				authGroup.POST("/post/:post_id/reaction", group.PostActionHandler.ToggleReaction)
				authGroup.POST("/post/:post_id/read", group.PostActionHandler.MarkRead)
			}
		}
	}

	return r
}
