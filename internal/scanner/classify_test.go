package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"duetrack/internal/model"
	"duetrack/internal/scanner"
)

var planHeader = []string{
	"序号", "阶段", "部门", "角色来源", "接口号", "责任人",
	"", "", "", "", "接口时间", "一室",
}

var deliverableHeader = []string{
	"序号", "阶段", "部门", "角色来源", "接口号", "责任人", "", "", "提资时间",
}

var threeDHeader = []string{
	"序号", "阶段", "部门", "角色来源", "接口号", "三维提资", "三维校核",
}

func TestClassifyByFilename(t *testing.T) {
	cases := []struct {
		path   string
		header []string
		kind   model.FileKind
		pid    string
	}{
		{"/data/2016项目总体接口计划表.xlsx", planHeader, model.KindGeneral, "2016"},
		{"/data/1818一室接口计划.xlsx", planHeader, model.KindRoomOne, "1818"},
		{"/data/2016二室接口计划.xlsx", planHeader, model.KindRoomTwo, "2016"},
		{"/data/2016建筑总图室接口计划.xlsx", planHeader, model.KindSitePlan, "2016"},
		{"/data/2016三维接口表.xlsx", threeDHeader, model.KindThreeD, "2016"},
		{"/data/2016近期提资审查.xlsx", deliverableHeader, model.KindDeliverable, "2016"},
	}

	for _, c := range cases {
		kind, pid, ok := scanner.Classify(c.path, c.header)
		if !ok {
			t.Fatalf("Classify(%s) rejected", c.path)
		}
		if kind != c.kind || pid != c.pid {
			t.Fatalf("Classify(%s) = (%d, %s), want (%d, %s)", c.path, kind, pid, c.kind, c.pid)
		}
	}
}

func TestClassifyRejects(t *testing.T) {
	cases := []struct {
		path   string
		header []string
	}{
		// 无关文件
		{"/data/会议纪要.xlsx", planHeader},
		// Excel 临时文件
		{"/data/~$2016总体接口计划表.xlsx", planHeader},
		// 文件名匹配但表头签名不符
		{"/data/2016总体接口计划表.xlsx", []string{"a", "b", "c"}},
		// 无项目号
		{"/data/总体接口计划表.xlsx", planHeader},
	}

	for _, c := range cases {
		if kind, pid, ok := scanner.Classify(c.path, c.header); ok {
			t.Fatalf("Classify(%s) = (%d, %s), want reject", c.path, kind, pid)
		}
	}
}

func TestClassifyProjectIDFromHeader(t *testing.T) {
	header := append([]string{}, planHeader...)
	header = append(header, "项目号: 1818")

	kind, pid, ok := scanner.Classify("/data/总体接口计划表.xlsx", header)
	if !ok || kind != model.KindGeneral || pid != "1818" {
		t.Fatalf("Classify = (%d, %s, %v), want (1, 1818, true)", kind, pid, ok)
	}
}

func TestDiscoverWorkbooksOrderAndFilter(t *testing.T) {
	dir := t.TempDir()

	touch := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	touch("b计划.xlsx")
	touch("a计划.xlsx")
	touch("c计划.xlsm")
	touch("说明.txt")
	touch("~$a计划.xlsx")
	touch(".registry/registry.db")

	paths, err := scanner.DiscoverWorkbooks(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) != 3 {
		t.Fatalf("found %d workbooks, want 3: %v", len(paths), paths)
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1] >= paths[i] {
			t.Fatalf("paths not sorted: %v", paths)
		}
	}
	if filepath.Base(paths[0]) != "a计划.xlsx" {
		t.Fatalf("first path = %s, want a计划.xlsx", paths[0])
	}
}
