package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"nurse-directory/pkg/common/config"
	"nurse-directory/pkg/core/nurse/service"
	"nurse-directory/pkg/web/handler"
	"nurse-directory/pkg/web/middleware"
)

// RegisterAPIs 注册所有API路由
func RegisterAPIs(h *server.Hertz, cfg *config.Config, nurses service.NurseService) {
	// 初始化Handler实例
	healthHandler := handler.NewHealthCheckHandler(nurses)
	nurseHandler := handler.NewNurseHandler(nurses)

	// 注册全局中间件（按执行顺序）
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.SecurityCheckMiddleware(cfg.Middleware.Security),
		middleware.TimeoutMiddleware(cfg.Middleware.Timeout.RequestTimeout),
	)

	// 基础接口组
	h.GET("/health", healthHandler.AdvancedHealthCheck)

	// 护士接口组：字面路径与 :id 并存，静态段优先匹配
	nurseGroup := h.Group("/nurse")
	{
		nurseGroup.POST("/create", nurseHandler.Create)
		nurseGroup.GET("/index", nurseHandler.Index)
		nurseGroup.GET("/name/:name", nurseHandler.FindByName)
		nurseGroup.PUT("/update/:id", nurseHandler.Update)
		nurseGroup.PATCH("/update/:id", nurseHandler.Update)
		nurseGroup.DELETE("/delete/:id", nurseHandler.Delete)
		nurseGroup.POST("/login", nurseHandler.Login)
		nurseGroup.GET("/:id", nurseHandler.FindByID)
	}
}
