package api

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/api/middleware"
	"Ripple/internal/pkg/logger"
	"Ripple/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(group.AllowOrigins))
	logger.SetupGin(r)

	apiGroup := r.Group("/api/v1")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, dto.Response{
				Code:    response.Ok,
				Message: "pong",
			})
		})

		// 无需登录即可访问的接口
		apiGroup.POST("/registration", group.UserHandler.Register)
		apiGroup.POST("/authentication", group.UserHandler.Login)

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware(group.TokenChecker))
		{
			authGroup.POST("/logout", group.UserHandler.Logout)
			authGroup.GET("/me", group.UserHandler.GetMe)
			authGroup.POST("/media", group.MediaHandler.Upload)
		}

		postGroup := authGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.GetAll)
			postGroup.GET("/recent", group.PostHandler.GetRecent)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/:post_id/after", group.PostHandler.GetPostsAfter)
			postGroup.GET("/:post_id/before", group.PostHandler.GetPostsBefore)
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			postGroup.POST("/:post_id/likes", group.PostHandler.LikePost)
			postGroup.DELETE("/:post_id/likes", group.PostHandler.DislikePost)
			postGroup.POST("/:post_id/reposts", group.PostHandler.RepostPost)
			postGroup.POST("/:post_id/shares", group.PostHandler.SharePost)
			postGroup.GET("/:post_id/metrics", group.PostMetricHandler.GetSnapshot)
		}

		sysbox := authGroup.Group("/sysbox")
		{
			sysbox.GET("/list", group.SysBoxHandler.GetNotificationList)
			sysbox.GET("/unread", group.SysBoxHandler.GetUnreadCount)
			sysbox.POST("/read", group.SysBoxHandler.MarkRead)
			sysbox.POST("/read/all", group.SysBoxHandler.MarkAllRead)
			sysbox.GET("/ws", group.SysBoxPushHandler.Connect)
		}
	}

	return r
}
