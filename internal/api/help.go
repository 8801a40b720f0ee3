package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duetrack/internal/help"
)

// GetHelp 返回使用说明与按角色的跳转章节
// GET /api/help?role=设计人员
func (h *Handler) GetHelp(c *gin.Context) {
	role := c.Query("role")

	c.JSON(http.StatusOK, gin.H{
		"content": help.LoadDoc(h.cfg.Data.FolderPath),
		"section": help.SectionFor(role),
	})
}
