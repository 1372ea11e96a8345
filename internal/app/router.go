package app

import (
	"studyhub_backend/docs"
	"studyhub_backend/internal/middleware"
	"studyhub_backend/internal/model"
	"studyhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 所有 API 先解析身份，失败时按匿名处理
	api := router.Group("/api")
	api.Use(middleware.Identity(s.auth), middleware.ActivityMiddleware(repos.user))

	// 1. 公共路由(可选登录)
	a.registerPublicRoutes(api, c)

	// 2. 需要登录的路由
	authGroup := api.Group("")
	authGroup.Use(middleware.RequireAuth())
	a.registerUserRoutes(authGroup, c)

	// 3. 管理员相关接口
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RoleMiddleware(model.RoleAdmin))
	a.registerAdminRoutes(admin, c)
}

func (a *App) registerPublicRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/health", c.health.HealthCheck)
	rg.POST("/auth/register", c.auth.Register)
	rg.POST("/auth/login", c.auth.Login)

	rg.GET("/interactive-exams", c.interactive.ListExams)
	rg.GET("/interactive-exams/:id", c.interactive.GetExam)

	rg.GET("/essays", c.content.ListEssays)
	rg.GET("/essays/:id", c.content.GetEssay)
	rg.GET("/exams", c.content.ListExams)
	rg.GET("/exams/:id", c.content.GetExam)

	rg.GET("/categories", c.catalog.ListCategories)
	rg.GET("/categories/:id", c.catalog.GetCategory)
	rg.GET("/topics", c.catalog.ListTopics)
	rg.GET("/topics/:id", c.catalog.GetTopic)

	rg.GET("/news", c.news.ListNews)
	rg.GET("/news/:id", c.news.GetNews)
	rg.GET("/notices", c.news.ListNotices)
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/auth/password", c.auth.ChangePassword)

	// 交互式考试
	rg.POST("/interactive-exams/submit", c.interactive.Submit)
	rg.GET("/interactive-exams/submissions/me", c.interactive.ListMySubmissions)
	rg.GET("/interactive-exams/submissions/:id", c.interactive.GetSubmission)

	// 订阅
	rg.POST("/subscriptions/essay/:id", c.subscription.SubscribeEssay)
	rg.POST("/subscriptions/exam/:id", c.subscription.SubscribeExam)
	rg.POST("/subscriptions/full-access", c.subscription.SubscribeFullAccess)
	rg.GET("/subscriptions/me", c.subscription.ListMine)
	rg.DELETE("/subscriptions/:id", c.subscription.Cancel)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	exams := rg.Group("/interactive-exams")
	{
		exams.GET("", c.interactive.AdminListExams)
		exams.POST("", c.interactive.CreateExam)
		exams.GET("/:id", c.interactive.AdminGetExam)
		exams.PUT("/:id", c.interactive.UpdateExam)
		exams.DELETE("/:id", c.interactive.DeleteExam)
		exams.POST("/:id/questions", c.interactive.AddQuestion)
		exams.PUT("/:id/questions/:questionId", c.interactive.UpdateQuestion)
		exams.DELETE("/:id/questions/:questionId", c.interactive.DeleteQuestion)
		exams.GET("/:id/submissions", c.interactive.ListExamSubmissions)
	}

	rg.GET("/subscriptions", c.subscription.AdminList)
	rg.POST("/uploads/image", c.upload.UploadImage)

	rg.GET("/essays/:id", c.content.AdminGetEssay)
	rg.POST("/essays", c.content.CreateEssay)
	rg.PUT("/essays/:id", c.content.UpdateEssay)
	rg.DELETE("/essays/:id", c.content.DeleteEssay)

	rg.GET("/exams/:id", c.content.AdminGetExam)
	rg.POST("/exams", c.content.CreateExam)
	rg.PUT("/exams/:id", c.content.UpdateExam)
	rg.DELETE("/exams/:id", c.content.DeleteExam)

	rg.POST("/categories", c.catalog.CreateCategory)
	rg.PUT("/categories/:id", c.catalog.UpdateCategory)
	rg.DELETE("/categories/:id", c.catalog.DeleteCategory)
	rg.POST("/topics", c.catalog.CreateTopic)
	rg.PUT("/topics/:id", c.catalog.UpdateTopic)
	rg.DELETE("/topics/:id", c.catalog.DeleteTopic)

	rg.GET("/news", c.news.AdminListNews)
	rg.POST("/news", c.news.CreateNews)
	rg.PUT("/news/:id", c.news.UpdateNews)
	rg.DELETE("/news/:id", c.news.DeleteNews)

	rg.GET("/notices", c.news.AdminListNotices)
	rg.POST("/notices", c.news.CreateNotice)
	rg.PUT("/notices/:id", c.news.UpdateNotice)
	rg.DELETE("/notices/:id", c.news.DeleteNotice)
}
