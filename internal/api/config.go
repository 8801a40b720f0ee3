package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"duetrack/internal/config"
	"duetrack/internal/store"
)

// ConfigResponse 配置响应
type ConfigResponse struct {
	FolderPath  string         `json:"folderPath"`
	GraceDays   int            `json:"graceDays"`
	Adjustments map[string]int `json:"adjustments"`
}

// GetConfig 获取配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		FolderPath:  h.cfg.Data.FolderPath,
		GraceDays:   h.cfg.Business.GraceDays,
		Adjustments: h.cfg.Business.Adjustments,
	})
}

// UpdateConfigRequest 配置更新请求
type UpdateConfigRequest struct {
	FolderPath *string `json:"folderPath"`
	GraceDays  *int    `json:"graceDays"`
}

// UpdateConfig 更新配置并落盘
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FolderPath != nil {
		h.cfg.Data.FolderPath = *req.FolderPath
	}
	if req.GraceDays != nil && *req.GraceDays > 0 {
		h.cfg.Business.GraceDays = *req.GraceDays
		// 同步写入共享登记库，其他机器的扫描取同一宽限期
		if err := h.store.SetConfig("grace_days", strconv.Itoa(*req.GraceDays)); err != nil {
			log.Printf("写入登记库配置失败: %v", err)
		}
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PromoteRegistry 把本地兜底登记库迁移到共享数据目录
// POST /api/registry/promote
func (h *Handler) PromoteRegistry(c *gin.Context) {
	if h.cfg.Data.FolderPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未配置数据目录"})
		return
	}

	path, err := store.PromoteLocalRegistry(h.cfg.Data.FolderPath)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	// 迁移后需要重启才会使用新路径
	c.JSON(http.StatusOK, gin.H{"status": "ok", "path": path, "restartRequired": true})
}
