package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duetrack/internal/export"
	"duetrack/internal/model"
	"duetrack/internal/store"
)

// exportHeaders 整页复制的固定列头
var exportHeaders = []string{
	"原始行号", "项目号", "接口号", "部门", "接口时间",
	"角色来源", "责任人", "回文单号", "状态",
}

// ExportTasks 导出指定页签为 TSV（供"复制本页"粘贴进 Excel）
// GET /api/tasks/export?kind=1
func (h *Handler) ExportTasks(c *gin.Context) {
	kind, ok := parseKind(c.Query("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind 必须是 1-6"})
		return
	}

	tasks, err := h.store.ListTasks(store.TaskQueryOptions{FileKind: &kind})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := make([][]interface{}, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskExportRow(t))
	}

	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8",
		[]byte(export.FormatTSV(exportHeaders, rows)))
}

func taskExportRow(t *model.Task) []interface{} {
	var interfaceTime interface{}
	if t.InterfaceTime != nil {
		interfaceTime = t.InterfaceTime.Format("2006-01-02")
	}
	var replyNo interface{}
	if t.ReplyNo != "" {
		replyNo = t.ReplyNo
	}
	return []interface{}{
		t.RowIndex, t.ProjectID, t.InterfaceID, t.Department, interfaceTime,
		t.Role, t.ResponsiblePerson, replyNo, t.DisplayStatus(),
	}
}
