package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duetrack/internal/model"
	"duetrack/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	FolderPath   string      `json:"folderPath"`   // 数据目录
	LocalMode    bool        `json:"localMode"`    // 是否本地兜底模式
	RegistryPath string      `json:"registryPath"` // 登记库路径
	TotalTasks   int         `json:"totalTasks"`   // 未归档任务总数
	KindCounts   map[int]int `json:"kindCounts"`   // 各页签任务数
	LastScanAt   string      `json:"lastScanAt"`   // 最近一次扫描完成时间
	Scanning     bool        `json:"scanning"`     // 是否有扫描进行中
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		FolderPath:   h.cfg.Data.FolderPath,
		LocalMode:    h.fallback,
		RegistryPath: h.store.Path(),
		KindCounts:   make(map[int]int),
	}

	total := 0
	for _, kind := range model.AllKinds {
		k := kind
		n, err := h.store.CountTasks(store.TaskQueryOptions{FileKind: &k})
		if err != nil {
			n = 0
		}
		resp.KindCounts[int(kind)] = n
		total += n
	}
	resp.TotalTasks = total

	resp.LastScanAt, _ = h.store.LastScanTime()

	h.mu.Lock()
	resp.Scanning = h.running
	h.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}
