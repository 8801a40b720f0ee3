package scanner_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"duetrack/internal/filter"
	"duetrack/internal/model"
	"duetrack/internal/scanner"
	"duetrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// writePlanWorkbook 生成一个总体接口计划工作簿
func writePlanWorkbook(t *testing.T, path string, header []string, dataRows [][]interface{}) {
	t.Helper()

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := wb.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		t.Fatal(err)
	}

	for i, row := range dataRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	wb.Close()
}

func drain(ch <-chan scanner.ProgressEvent) []scanner.ProgressEvent {
	var events []scanner.ProgressEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func TestScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t)

	writePlanWorkbook(t, filepath.Join(dir, "2016总体接口计划表.xlsx"), planHeader, [][]interface{}{
		{1, "施工图", "结构室", "提出", "S-SA-001", "张三", "", "", "", "", "2026-01-10", ""},
		{2, "施工图", "结构室", "提出", "S-SA-002", "李四", "", "", "", "", "2026-03-01", ""},
		{3, "施工图", "结构室", "提出", "", "王五", "", "", "", "", "2026-01-10", ""},
	})
	// 无关文件被忽略，不影响扫描
	writePlanWorkbook(t, filepath.Join(dir, "人员名单.xlsx"), []string{"姓名"}, nil)

	c := scanner.NewCoordinator(s)
	events := drain(c.Scan(context.Background(), scanner.ScanOptions{
		Folder: dir,
		Today:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local),
		Adjust: filter.DefaultAdjustTable(),
	}))

	last := events[len(events)-1]
	if last.Type != "done" {
		t.Fatalf("last event = %s (%s), want done", last.Type, last.Message)
	}

	kind := model.KindGeneral
	tasks, err := s.ListTasks(store.TaskQueryOptions{FileKind: &kind})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.InterfaceID != "S-SA-001" || task.ProjectID != "2016" {
		t.Fatalf("task = %s/%s", task.ProjectID, task.InterfaceID)
	}
	if task.RowIndex != 2 {
		t.Fatalf("row index = %d, want 2", task.RowIndex)
	}
	if task.Status != model.StatusOpen {
		t.Fatalf("status = %s, want open", task.Status)
	}
}

func TestScanSecondPassRefreshes(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t)
	path := filepath.Join(dir, "2016总体接口计划表.xlsx")

	writePlanWorkbook(t, path, planHeader, [][]interface{}{
		{1, "施工图", "结构室", "提出", "S-SA-001", "张三", "", "", "", "", "2026-01-10", ""},
	})

	c := scanner.NewCoordinator(s)
	opts := scanner.ScanOptions{
		Folder: dir,
		Today:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local),
	}
	drain(c.Scan(context.Background(), opts))

	kind := model.KindGeneral
	tasks, _ := s.ListTasks(store.TaskQueryOptions{FileKind: &kind})
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	if err := s.CompleteTask(tasks[0].ID, "回文2026-001", time.Now()); err != nil {
		t.Fatal(err)
	}

	// 重存工作簿：同一接口挪到第 3 行
	writePlanWorkbook(t, path, planHeader, [][]interface{}{
		{0, "", "", "", "", "", "", "", "", "", "", ""},
		{1, "施工图", "结构室", "提出", "S-SA-001", "张三", "", "", "", "", "2026-01-10", ""},
	})
	drain(c.Scan(context.Background(), opts))

	tasks, _ = s.ListTasks(store.TaskQueryOptions{FileKind: &kind})
	if len(tasks) != 1 {
		t.Fatalf("tasks after rescan = %d, want 1", len(tasks))
	}
	if tasks[0].RowIndex != 3 {
		t.Fatalf("row index = %d, want 3", tasks[0].RowIndex)
	}
	if tasks[0].Status != model.StatusCompleted {
		t.Fatalf("status = %s, want completed", tasks[0].Status)
	}
}

func TestScanCancelDiscardsPartialResult(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t)

	writePlanWorkbook(t, filepath.Join(dir, "2016总体接口计划表.xlsx"), planHeader, [][]interface{}{
		{1, "施工图", "结构室", "提出", "S-SA-001", "张三", "", "", "", "", "2026-01-10", ""},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // 在第一个工作簿前取消

	c := scanner.NewCoordinator(s)
	events := drain(c.Scan(ctx, scanner.ScanOptions{
		Folder: dir,
		Today:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local),
	}))

	last := events[len(events)-1]
	if last.Type != "cancelled" {
		t.Fatalf("last event = %s, want cancelled", last.Type)
	}

	kind := model.KindGeneral
	n, err := s.CountTasks(store.TaskQueryOptions{FileKind: &kind})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("tasks = %d, want 0 (partial result discarded)", n)
	}
}
