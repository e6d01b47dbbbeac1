package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"staffrota/backend/config"
	"staffrota/backend/internal/api/handler"
	"staffrota/backend/internal/api/middleware"
	"staffrota/backend/internal/model"
	"staffrota/backend/pkg/jwt"
	"staffrota/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxFileSizeBytes()))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminRoles := []string{model.RoleRoot, model.RoleSuperAdmin, model.RoleAdmin}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)
			authorized.POST("/auth/accounts", middleware.RoleAuth(model.RoleRoot, model.RoleSuperAdmin), h.Auth.CreateAccount)

			// 组织模块（root 专属）
			organizations := authorized.Group("/organizations")
			organizations.Use(middleware.RoleAuth(model.RoleRoot))
			{
				organizations.POST("", h.Organization.Create)
				organizations.GET("", h.Organization.List)
				organizations.GET("/:id", h.Organization.Get)
			}

			// 部门模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.List)
				departments.POST("", middleware.RoleAuth(adminRoles...), h.Department.Create)
				departments.PUT("/:id", middleware.RoleAuth(adminRoles...), h.Department.Update)
				departments.DELETE("/:id", middleware.RoleAuth(adminRoles...), h.Department.Delete)
			}

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.GET("/:id/schedules/week", h.Employee.WeekSchedules)
				employees.POST("", middleware.RoleAuth(adminRoles...), h.Employee.Create)
				employees.PUT("/:id", middleware.RoleAuth(adminRoles...), h.Employee.Update)
				employees.DELETE("/:id", middleware.RoleAuth(adminRoles...), h.Employee.Delete)
			}

			// 排班批次模块
			rotas := authorized.Group("/rotas")
			{
				rotas.POST("/upload", middleware.RoleAuth(adminRoles...), h.Rota.Upload)
				rotas.POST("", middleware.RoleAuth(adminRoles...), h.Rota.CreateManual)
				rotas.GET("", h.Rota.List)
				rotas.GET("/:id/schedules", h.Rota.Schedules)
				rotas.GET("/:id/preview", h.Rota.Preview)
				rotas.GET("/:id/raw", middleware.RoleAuth(adminRoles...), h.Rota.RawDetail)
				rotas.GET("/:id/export", h.Rota.Export)
				rotas.GET("/:id/change-logs", middleware.RoleAuth(adminRoles...), h.Rota.ChangeLogs)
				rotas.DELETE("/:id", middleware.RoleAuth(adminRoles...), h.Rota.DeleteRota)
			}

			// 排班明细模块
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/:id", h.Rota.GetSchedule)
				schedules.PUT("/:id", middleware.RoleAuth(adminRoles...), h.Rota.UpdateSchedule)
				schedules.DELETE("/:id", middleware.RoleAuth(adminRoles...), h.Rota.DeleteSchedule)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
