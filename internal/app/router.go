package app

import (
	"inbalance_quiz_backend/docs"
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/internal/middleware"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（问卷本身匿名，无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/admin/login", c.auth.Login)

		quiz := public.Group("/quiz")
		{
			quiz.GET("/questions", c.quiz.GetQuestions)
			quiz.POST("/start", c.quiz.StartQuiz)
			quiz.POST("/sessions/:id/answers", c.quiz.SubmitAnswer)
			quiz.POST("/sessions/:id/back", c.quiz.Back)
			quiz.POST("/sessions/:id/complete", c.quiz.Complete)
			quiz.POST("/responses/:id/waitlist", c.quiz.JoinWaitlist)
		}
	}

	// 2. 后台路由（JWT 认证）
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("/profile", c.auth.GetProfile)

		responses := admin.Group("/responses")
		responses.Use(middleware.RoleMiddleware(model.Admin, model.Marketer))
		{
			responses.GET("", c.response.ListResponses)
			responses.GET("/stats", c.response.GetStats)
			responses.GET("/:id", c.response.GetResponse)
			responses.POST("/export", c.response.ExportCSV)
			responses.POST("/:id/resync", c.response.ResyncResponse)
		}

		// 账号管理仅限管理员
		accounts := admin.Group("/accounts")
		accounts.Use(middleware.RoleMiddleware(model.Admin))
		{
			accounts.POST("", c.auth.CreateAccount)
		}
	}
}
