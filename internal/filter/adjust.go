package filter

import "time"

// AdjustTable 项目日期偏移表：项目号 -> 比较前需减去的天数
//
// 1818 项目的接口计划比全所基准时间线提前 6 天，比较前统一回拨，
// 其余项目不做偏移。
type AdjustTable map[string]int

// DefaultAdjustTable 内置偏移表
func DefaultAdjustTable() AdjustTable {
	return AdjustTable{
		"1818": 6,
	}
}

// Adjust 对单元格日期应用项目偏移；零值日期或未知项目原样返回
func (a AdjustTable) Adjust(d time.Time, projectID string) time.Time {
	if d.IsZero() {
		return d
	}
	offset, ok := a[projectID]
	if !ok || offset == 0 {
		return d
	}
	return d.AddDate(0, 0, -offset)
}
