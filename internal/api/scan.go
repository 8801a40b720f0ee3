package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"duetrack/internal/filter"
	"duetrack/internal/scanner"
)

// StartScan 触发一次后台扫描
// POST /api/scan
func (h *Handler) StartScan(c *gin.Context) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "扫描进行中"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.running = true
	h.cancel = cancel
	h.events = nil
	h.finished = false
	h.mu.Unlock()

	adjust := filter.DefaultAdjustTable()
	for pid, days := range h.cfg.Business.Adjustments {
		adjust[pid] = days
	}

	// 共享登记库里的宽限期优先于本机配置，各机器口径一致
	graceDays := h.cfg.Business.GraceDays
	if v, err := h.store.GetConfig("grace_days"); err == nil {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			graceDays = n
		}
	}

	opts := scanner.ScanOptions{
		Folder:      h.cfg.Data.FolderPath,
		Today:       time.Now(),
		Adjust:      adjust,
		GracePeriod: time.Duration(graceDays) * 24 * time.Hour,
	}
	ch := h.coordinator.Scan(ctx, opts)

	// 把进度事件收进内存，供界面轮询
	go func() {
		for ev := range ch {
			h.mu.Lock()
			h.events = append(h.events, ev)
			h.mu.Unlock()
		}
		h.mu.Lock()
		h.running = false
		h.finished = true
		h.cancel = nil
		h.mu.Unlock()
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// ScanProgress 轮询扫描进度
// GET /api/scan/progress
func (h *Handler) ScanProgress(c *gin.Context) {
	h.mu.Lock()
	events := make([]scanner.ProgressEvent, len(h.events))
	copy(events, h.events)
	running := h.running
	finished := h.finished
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"running":  running,
		"finished": finished,
		"events":   events,
	})
}

// CancelScan 取消进行中的扫描
// POST /api/scan/cancel
func (h *Handler) CancelScan(c *gin.Context) {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()

	if cancel == nil {
		c.JSON(http.StatusOK, gin.H{"status": "idle"})
		return
	}
	cancel()
	c.JSON(http.StatusOK, gin.H{"status": "cancelling"})
}
