package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"enlistment/backend/config"
	"enlistment/backend/internal/api/handler"
	"enlistment/backend/internal/api/middleware"
	"enlistment/backend/pkg/jwt"
	"enlistment/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：跳过黑名单检查与限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	student := middleware.RoleAuth(jwt.RoleStudent)
	admin := middleware.RoleAuth(jwt.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", middleware.RateLimit(rdb, cfg.Enlist.RateLimit, cfg.Enlist.RateWindow), h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 选课模块（学生）
			enlist := authorized.Group("/enlist", student)
			{
				enlist.GET("", h.Enlist.Overview)
				enlist.POST("", middleware.RateLimit(rdb, cfg.Enlist.RateLimit, cfg.Enlist.RateWindow), h.Enlist.Execute)
				enlist.GET("/calendar", h.Enlist.Calendar)
			}

			// 班级模块：查询对所有登录用户开放，新建仅管理员
			sections := authorized.Group("/sections")
			{
				sections.GET("", h.Section.List)
				sections.GET("/page", admin, h.Catalog.SectionPage)
				sections.GET("/:id", h.Section.Get)
				sections.POST("", admin, h.Section.Create)
			}

			// 基础数据模块（管理员）
			catalog := authorized.Group("", admin)
			{
				catalog.GET("/rooms", h.Catalog.ListRooms)
				catalog.POST("/rooms", h.Catalog.CreateRoom)
				catalog.GET("/subjects", h.Catalog.ListSubjects)
				catalog.POST("/subjects", h.Catalog.CreateSubject)
				catalog.POST("/students", h.Catalog.CreateStudent)
			}

			// 导出模块（管理员）
			authorized.GET("/export/sections", admin, h.Export.ExportRoster)
		}
	}

	return r
}
