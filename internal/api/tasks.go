package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"duetrack/internal/model"
	"duetrack/internal/store"
)

// TaskView 任务行视图（在任务记录上附展示状态）
type TaskView struct {
	*model.Task
	DisplayStatus string `json:"displayStatus"`
}

// ListTasks 列出指定页签的任务
// GET /api/tasks?kind=1&archived=0
func (h *Handler) ListTasks(c *gin.Context) {
	kind, ok := parseKind(c.Query("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind 必须是 1-6"})
		return
	}

	opts := store.TaskQueryOptions{
		FileKind:        &kind,
		IncludeArchived: c.Query("archived") == "1",
	}
	tasks, err := h.store.ListTasks(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{Task: t, DisplayStatus: t.DisplayStatus()})
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":     int(kind),
		"kindName": kind.String(),
		"tasks":    views,
	})
}

// AssignRequest 指派请求
type AssignRequest struct {
	Person     string `json:"person" binding:"required"`
	AssignedBy string `json:"assignedBy"`
}

// AssignTask 指派责任人
// POST /api/tasks/:id/assign
func (h *Handler) AssignTask(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.store.AssignTask(id, req.Person, req.AssignedBy, time.Now()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.respondTask(c, id)
}

// CompleteRequest 完成请求（填写回文单号）
type CompleteRequest struct {
	ReplyNo string `json:"replyNo" binding:"required"`
}

// CompleteTask 填写回文单号，任务转入待上级确认
// POST /api/tasks/:id/complete
func (h *Handler) CompleteTask(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.store.CompleteTask(id, req.ReplyNo, time.Now()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.respondTask(c, id)
}

// ConfirmRequest 确认请求
type ConfirmRequest struct {
	Confirmer string `json:"confirmer" binding:"required"`
}

// ConfirmTask 上级确认完成
// POST /api/tasks/:id/confirm
func (h *Handler) ConfirmTask(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.store.ConfirmTask(id, req.Confirmer, time.Now()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.respondTask(c, id)
}

func (h *Handler) respondTask(c *gin.Context, id string) {
	t, err := h.store.GetTaskByID(id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	c.JSON(http.StatusOK, TaskView{Task: t, DisplayStatus: t.DisplayStatus()})
}

func parseKind(s string) (model.FileKind, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	kind := model.FileKind(n)
	return kind, kind.Valid()
}
