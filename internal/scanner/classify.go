package scanner

import (
	"path/filepath"
	"regexp"
	"strings"

	"duetrack/internal/filter"
	"duetrack/internal/model"
)

var projectIDPattern = regexp.MustCompile(`\d{4}`)
var headerProjectPattern = regexp.MustCompile(`项目号[:：]?\s*(\d{4})`)

// Classify 按文件名关键字加表头签名判定文件类型并提取项目号
//
// 判定失败返回 ok=false，调用方直接跳过该工作簿（非致命）。
func Classify(path string, header []string) (kind model.FileKind, projectID string, ok bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		return 0, "", false
	}

	kind = kindFromFilename(base)
	if kind == 0 {
		return 0, "", false
	}

	if !headerMatches(kind, header) {
		return 0, "", false
	}

	projectID = extractProjectID(base, header)
	if projectID == "" {
		return 0, "", false
	}

	return kind, projectID, true
}

// kindFromFilename 文件名关键字判定；更具体的关键字优先
func kindFromFilename(base string) model.FileKind {
	switch {
	case strings.Contains(base, "三维"):
		return model.KindThreeD
	case strings.Contains(base, "提资"), strings.Contains(base, "审查"):
		return model.KindDeliverable
	case strings.Contains(base, "一室"):
		return model.KindRoomOne
	case strings.Contains(base, "二室"):
		return model.KindRoomTwo
	case strings.Contains(base, "建筑总图"), strings.Contains(base, "总图室"):
		return model.KindSitePlan
	case strings.Contains(base, "接口计划"):
		return model.KindGeneral
	default:
		return 0
	}
}

// headerMatches 校验表头签名：接口号列与决策日期列的列名要对得上
func headerMatches(kind model.FileKind, header []string) bool {
	rule, ok := filter.RuleFor(kind)
	if !ok {
		return false
	}

	if !headerContains(header, rule.IDCol, "接口号", "接口编号") {
		return false
	}

	if rule.DateCol >= 0 {
		if !headerContains(header, rule.DateCol, "时间", "日期") {
			return false
		}
	}

	for _, col := range rule.MarkerCols {
		if filter.Cell(header, col) == "" {
			return false
		}
	}

	return true
}

func headerContains(header []string, idx int, subs ...string) bool {
	cell := filter.Cell(header, idx)
	for _, sub := range subs {
		if strings.Contains(cell, sub) {
			return true
		}
	}
	return false
}

// extractProjectID 项目号提取：优先文件名中的 4 位数字，
// 其次表头中的"项目号: XXXX"单元格
func extractProjectID(base string, header []string) string {
	if m := projectIDPattern.FindString(base); m != "" {
		return m
	}
	for _, cell := range header {
		if m := headerProjectPattern.FindStringSubmatch(cell); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}
