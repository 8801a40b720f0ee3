// Package api 提供任务看板的 JSON API。
package api

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"duetrack/internal/config"
	"duetrack/internal/scanner"
	"duetrack/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.Store
	coordinator *scanner.Coordinator
	cfg         *config.AppConfig
	fallback    bool // 登记库处于本地兜底模式

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	events   []scanner.ProgressEvent
	finished bool
}

// NewHandler 创建 API 处理器
func NewHandler(s *store.Store, cfg *config.AppConfig, fallback bool) *Handler {
	return &Handler{
		store:       s,
		coordinator: scanner.NewCoordinator(s),
		cfg:         cfg,
		fallback:    fallback,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 扫描
	router.POST("/scan", h.StartScan)
	router.GET("/scan/progress", h.ScanProgress)
	router.POST("/scan/cancel", h.CancelScan)

	// 任务
	router.GET("/tasks", h.ListTasks)
	router.GET("/tasks/export", h.ExportTasks)
	router.POST("/tasks/:id/assign", h.AssignTask)
	router.POST("/tasks/:id/complete", h.CompleteTask)
	router.POST("/tasks/:id/confirm", h.ConfirmTask)

	// 使用说明
	router.GET("/help", h.GetHelp)

	// 配置
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)
	router.POST("/registry/promote", h.PromoteRegistry)
}
