package filter_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"duetrack/internal/filter"
	"duetrack/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// kind 1 测试表：表头 + 接口号在 E 列、日期在 K 列
func kind1Rows(dates ...string) [][]string {
	rows := [][]string{
		{"序号", "阶段", "部门", "角色来源", "接口号", "责任人", "", "", "", "", "接口时间"},
	}
	for i, d := range dates {
		rows = append(rows, []string{
			"", "", "结构室", "提出", fmt.Sprintf("S-SA-%03d", i+1), "张三", "", "", "", "", d,
		})
	}
	return rows
}

func TestMonthWindowCurrentMonth(t *testing.T) {
	// 每月 15 日看本月窗口
	today := day(2026, 1, 15)
	rows := kind1Rows("2026-01-01", "2026-01-31", "2026-02-01")

	got := filter.DueRows(model.KindGeneral, "2016", rows, today, filter.DefaultAdjustTable())
	if want := []int{2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DueRows = %v, want %v", got, want)
	}
}

func TestMonthWindowAdvance(t *testing.T) {
	// 20 日起看下月窗口
	today := day(2026, 1, 20)
	rows := kind1Rows("2026-01-01", "2026-01-31", "2026-02-01")

	got := filter.DueRows(model.KindGeneral, "2016", rows, today, filter.DefaultAdjustTable())
	if want := []int{4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DueRows = %v, want %v", got, want)
	}
}

func TestMonthWindowBoundaryDay19(t *testing.T) {
	rows := kind1Rows("2026-01-31", "2026-02-01")

	// 19 日仍看本月
	got := filter.DueRows(model.KindGeneral, "2016", rows, day(2026, 1, 19), filter.DefaultAdjustTable())
	if want := []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("day 19: DueRows = %v, want %v", got, want)
	}

	// 20 日切到下月
	got = filter.DueRows(model.KindGeneral, "2016", rows, day(2026, 1, 20), filter.DefaultAdjustTable())
	if want := []int{3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("day 20: DueRows = %v, want %v", got, want)
	}
}

func TestAdjustmentIsolation(t *testing.T) {
	// 1818 项目回拨 6 天：2026-02-06 调整为 2026-01-31，落入一月窗口
	today := day(2026, 1, 15)
	rows := kind1Rows("2026-02-06")

	got := filter.DueRows(model.KindGeneral, "1818", rows, today, filter.DefaultAdjustTable())
	if want := []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("project 1818: DueRows = %v, want %v", got, want)
	}

	// 同一日期换成普通项目则不存活
	got = filter.DueRows(model.KindGeneral, "2016", rows, today, filter.DefaultAdjustTable())
	if got != nil {
		t.Fatalf("project 2016: DueRows = %v, want empty", got)
	}
}

func TestDeliverableDeltaWindow(t *testing.T) {
	// 类型 6：0 <= 调整后日期 - today <= 14
	today := day(2026, 1, 15)
	rows := [][]string{
		{"序号", "阶段", "部门", "角色来源", "接口号", "责任人", "", "", "提资时间"},
		{"", "", "一次", "接收", "T-001", "李四", "", "", "2026-01-29"}, // today+14
		{"", "", "一次", "接收", "T-002", "李四", "", "", "2026-01-30"}, // today+15
		{"", "", "一次", "接收", "T-003", "李四", "", "", "2026-01-14"}, // today-1
	}

	got := filter.DueRows(model.KindDeliverable, "2016", rows, today, filter.DefaultAdjustTable())
	if want := []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DueRows = %v, want %v", got, want)
	}
}

func TestThreeDMarkerColumns(t *testing.T) {
	// 类型 5：无日期谓词，标记列（F/G）非空才存活
	rows := [][]string{
		{"序号", "阶段", "部门", "角色来源", "接口号", "三维提资", "三维校核"},
		{"", "", "总图室", "提出", "3D-001", "√", "√"},
		{"", "", "总图室", "提出", "3D-002", "", "√"},
		{"", "", "总图室", "提出", "3D-003", "√", ""},
	}

	got := filter.DueRows(model.KindThreeD, "2016", rows, day(2026, 1, 15), filter.DefaultAdjustTable())
	if want := []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DueRows = %v, want %v", got, want)
	}
}

func TestRoomScheduleMarkerColumn(t *testing.T) {
	// 类型 2：与类型 1 同为月窗口，但要求本室标记列（L）非空
	today := day(2026, 1, 15)
	rows := [][]string{
		{"序号", "阶段", "部门", "角色来源", "接口号", "责任人", "", "", "", "", "接口时间", "一室"},
		{"", "", "一室", "提出", "Y-001", "王五", "", "", "", "", "2026-01-10", "√"},
		{"", "", "一室", "提出", "Y-002", "王五", "", "", "", "", "2026-01-10", ""},
	}

	got := filter.DueRows(model.KindRoomOne, "2016", rows, today, filter.DefaultAdjustTable())
	if want := []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DueRows = %v, want %v", got, want)
	}
}

func TestBlankInterfaceIDDropped(t *testing.T) {
	today := day(2026, 1, 15)
	rows := [][]string{
		{"序号", "阶段", "部门", "角色来源", "接口号", "责任人", "", "", "", "", "接口时间"},
		{"", "", "结构室", "提出", "", "张三", "", "", "", "", "2026-01-10"},
		{"", "", "结构室", "提出", "S-SA-002", "张三", "", "", "", "", "不是日期"},
		{"", "", "结构室", "提出", "S-SA-003", "张三", "", "", "", "", ""},
	}

	got := filter.DueRows(model.KindGeneral, "2016", rows, today, filter.DefaultAdjustTable())
	if got != nil {
		t.Fatalf("DueRows = %v, want empty", got)
	}
}

func TestFilterIsPure(t *testing.T) {
	today := day(2026, 1, 15)
	rows := kind1Rows("2026-01-01", "2026-01-31", "2026-02-01", "垃圾数据", "2026-01-19")

	first := filter.DueRows(model.KindGeneral, "2016", rows, today, filter.DefaultAdjustTable())
	for i := 0; i < 10; i++ {
		again := filter.DueRows(model.KindGeneral, "2016", rows, today, filter.DefaultAdjustTable())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: DueRows = %v, want %v", i, again, first)
		}
	}
}

func TestMonthWindowDecemberWrap(t *testing.T) {
	// 12 月 20 日切到次年 1 月窗口
	start, end := filter.MonthWindow(day(2025, 12, 20))
	if !start.Equal(day(2026, 1, 1)) || !end.Equal(day(2026, 1, 31)) {
		t.Fatalf("window = [%v, %v], want [2026-01-01, 2026-01-31]", start, end)
	}
}
