package keying_test

import (
	"testing"

	"duetrack/internal/keying"
	"duetrack/internal/model"
)

func TestTaskIDDeterministic(t *testing.T) {
	// 哈希口径是跨实现约定：sha256("kind|project|iface|file|row") 截断 16 位
	got := keying.TaskID(model.KindGeneral, "2016", "S-SA-001", "/data/a.xlsx", 87)
	if want := "ab51e21b423c8439"; got != want {
		t.Fatalf("TaskID = %s, want %s", got, want)
	}

	// 行移动后哈希变化
	moved := keying.TaskID(model.KindGeneral, "2016", "S-SA-001", "/data/a.xlsx", 92)
	if want := "a5013442efe0157c"; moved != want {
		t.Fatalf("TaskID(moved) = %s, want %s", moved, want)
	}
	if moved == got {
		t.Fatal("row move must change task id")
	}
}

func TestBusinessIDStableAcrossRowMove(t *testing.T) {
	a := &model.RowRecord{FileKind: model.KindGeneral, ProjectID: "2016", InterfaceID: "S-SA-001", SourceFile: "/data/a.xlsx", RowIndex: 87}
	b := &model.RowRecord{FileKind: model.KindGeneral, ProjectID: "2016", InterfaceID: "S-SA-001", SourceFile: "/data/b.xlsx", RowIndex: 92}

	if keying.RowBusinessID(a) != keying.RowBusinessID(b) {
		t.Fatal("business id must survive source file rename and row shift")
	}
	if keying.RowTaskID(a) == keying.RowTaskID(b) {
		t.Fatal("task id must bind to (source file, row index)")
	}
}
