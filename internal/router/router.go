package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/metrics"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(metrics.Instrument())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("inkpress_session", store))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	apiGroup := r.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", api.Login)
			authGroup.POST("/token", api.IssueToken)
			authGroup.POST("/logout", api.Logout)
		}

		// 文章与分类：读公开，写由 AccessPolicy 逐请求判定
		apiGroup.GET("/articles", api.ListArticles)
		apiGroup.GET("/articles/:id", api.GetArticle)
		apiGroup.POST("/articles/:id/view", api.ViewArticle)
		apiGroup.POST("/articles", api.CreateArticle)
		apiGroup.PUT("/articles/:id", api.UpdateArticle)
		apiGroup.DELETE("/articles/:id", api.DeleteArticle)

		apiGroup.GET("/categories", api.ListCategories)
		apiGroup.GET("/categories/:id", api.GetCategory)
		apiGroup.POST("/categories", api.CreateCategory)
		apiGroup.PUT("/categories/:id", api.UpdateCategory)
		apiGroup.DELETE("/categories/:id", api.DeleteCategory)

		// 公开的留言与订阅入口
		apiGroup.POST("/contact", api.SubmitContact)
		apiGroup.POST("/subscribe", api.Subscribe)

		// 前端埋点上报的会话质量采样
		apiGroup.POST("/analytics/session", api.RecordSessionSample)

		// 后台路由，处理器内部经由 AccessPolicy 限定管理员
		admin := apiGroup.Group("/admin")
		{
			admin.GET("/stats", api.GetDashboardStats)
			admin.GET("/messages", api.ListMessages)
			admin.GET("/messages/:id", api.GetMessage)
			admin.GET("/subscribers", api.ListSubscribers)
		}
	}

	return r
}
