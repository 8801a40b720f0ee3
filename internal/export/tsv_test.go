package export_test

import (
	"strings"
	"testing"

	"duetrack/internal/export"
)

func TestFormatTSV(t *testing.T) {
	headers := []string{"原始行号", "接口号", "责任人"}
	rows := [][]interface{}{
		{87, "S-SA-001", "张三"},
		{92, "S-SA-002", nil},
	}

	got := export.FormatTSV(headers, rows)
	want := "原始行号\t接口号\t责任人\n87\tS-SA-001\t张三\n92\tS-SA-002\t"
	if got != want {
		t.Fatalf("FormatTSV = %q, want %q", got, want)
	}
}

func TestFormatTSVNewlineCount(t *testing.T) {
	headers := []string{"a", "b"}
	rows := [][]interface{}{
		{"1", "2"},
		{nil, nil},
		{3.5, true},
	}

	got := export.FormatTSV(headers, rows)
	if n := strings.Count(got, "\n"); n != len(rows) {
		t.Fatalf("newline count = %d, want %d", n, len(rows))
	}
}

func TestFormatTSVEmptyRows(t *testing.T) {
	got := export.FormatTSV([]string{"x"}, nil)
	if got != "x" {
		t.Fatalf("FormatTSV = %q, want %q", got, "x")
	}
	if strings.Count(got, "\n") != 0 {
		t.Fatal("empty rows must produce no newline")
	}
}
