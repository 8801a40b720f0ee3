package filter

import (
	"strings"
	"time"

	"duetrack/internal/model"
)

// KindRule 单一文件类型的过滤规则定义
type KindRule struct {
	IDCol      int   // 接口号列（0-based）
	DateCol    int   // 决策日期列，-1 表示无日期谓词
	MarkerCols []int // 需非空的标记列
	DeltaRule  bool  // true：按 0..14 天窗口；false：按月窗口
}

// kindRules 六种文件类型的规则表
//
// 类型 1-4 共用月窗口规则，2/3/4 额外要求本室标记列非空；
// 类型 5 为纯结构判定（标记列非空，无日期）；类型 6 为 14 天提前窗口。
var kindRules = map[model.FileKind]KindRule{
	model.KindGeneral:     {IDCol: 4, DateCol: 10},
	model.KindRoomOne:     {IDCol: 4, DateCol: 10, MarkerCols: []int{11}},
	model.KindRoomTwo:     {IDCol: 4, DateCol: 10, MarkerCols: []int{11}},
	model.KindSitePlan:    {IDCol: 4, DateCol: 10, MarkerCols: []int{11}},
	model.KindThreeD:      {IDCol: 4, DateCol: -1, MarkerCols: []int{5, 6}},
	model.KindDeliverable: {IDCol: 4, DateCol: 8, DeltaRule: true},
}

// RuleFor 返回指定类型的规则
func RuleFor(kind model.FileKind) (KindRule, bool) {
	r, ok := kindRules[kind]
	return r, ok
}

// MonthWindow 计算当前生效的月窗口（闭区间）
//
// 每月 19 日（含）以前看本月，20 日起看下月。
func MonthWindow(today time.Time) (start, end time.Time) {
	y, m, _ := today.Date()
	if today.Day() > 19 {
		m++
	}
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// inWindow 闭区间判定，边界日期算在窗口内
func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// DueRows 对一个工作表执行到期过滤，返回存活行的 1-based 行号
//
// rows 为 GetRows 的完整结果（含表头行）。过滤是纯函数：同一份
// 工作表内容加同一个 today，结果逐位一致。行级解析失败一律静默
// 丢弃该行，不中断扫描。
func DueRows(kind model.FileKind, projectID string, rows [][]string, today time.Time, adjust AdjustTable) []int {
	rule, ok := kindRules[kind]
	if !ok || len(rows) <= 1 {
		return nil
	}

	today = DayOf(today)
	winStart, winEnd := MonthWindow(today)

	var survivors []int
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNo := i + 1

		if Cell(row, rule.IDCol) == "" {
			continue
		}

		markersOK := true
		for _, col := range rule.MarkerCols {
			if Cell(row, col) == "" {
				markersOK = false
				break
			}
		}
		if !markersOK {
			continue
		}

		if rule.DateCol < 0 {
			// 三维接口：纯结构判定
			survivors = append(survivors, rowNo)
			continue
		}

		d, ok := ParseCellDate(Cell(row, rule.DateCol))
		if !ok {
			continue
		}
		d = adjust.Adjust(d, projectID)

		if rule.DeltaRule {
			delta := DaysBetween(today, d)
			if delta >= 0 && delta <= 14 {
				survivors = append(survivors, rowNo)
			}
			continue
		}

		if inWindow(d, winStart, winEnd) {
			survivors = append(survivors, rowNo)
		}
	}

	return survivors
}

// Cell 取行内指定列的去空白值，越界返回空串
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
