package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// 单元格日期可能的字符串格式。excelize 的 GetRows 返回的是按单元格
// 格式渲染后的文本，常见形态是 ISO、"YYYY-M-D"、斜杠分隔和中文日期；
// 未设格式的日期单元格则以序列号数字出现。
var cellDateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006年1月2日",
	"2006-1-2 15:04:05",
	"2006/1/2 15:04:05",
	"01-02-06",
}

// ParseCellDate 解析单元格中的日期
//
// 支持原生日期（Excel 序列号）与字符串日期；解析失败返回 false，
// 调用方按"该行丢弃"处理。
func ParseCellDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range cellDateLayouts {
		if d, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DayOf(d), true
		}
	}

	// Excel 日期序列号（1900 日期系统）
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if d, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return DayOf(d), true
		}
	}

	return time.Time{}, false
}

// DayOf 截断到日粒度（本地时区零点）
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DaysBetween 日历天数差 to-from，日粒度
func DaysBetween(from, to time.Time) int {
	return int(DayOf(to).Sub(DayOf(from)).Hours() / 24)
}
