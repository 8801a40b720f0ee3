package help

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSectionFor(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"设计人员", "2-设计人员使用指南"},
		{"一室主任", "3-室主任使用指南"},
		{"二室主任", "3-室主任使用指南"},
		{"建筑总图室主任", "3-室主任使用指南"},
		{"所领导", "4-所领导使用指南"},
		{"管理员", "5-管理员使用指南"},
		{"外来人员", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := SectionFor(c.role); got != c.want {
			t.Errorf("SectionFor(%q) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestLoadDocPrefersDiskCopy(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, DocRelPath)
	if err := os.MkdirAll(filepath.Dir(docPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(docPath, []byte("# 最新版使用说明"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := LoadDoc(dir); got != "# 最新版使用说明" {
		t.Fatalf("LoadDoc = %q, want disk copy", got)
	}
}

func TestLoadDocFallsBackToEmbedded(t *testing.T) {
	doc := LoadDoc(t.TempDir()) // 目录里没有说明文档
	if doc == "" {
		t.Fatal("embedded doc is empty")
	}
	if !strings.Contains(doc, "使用说明") {
		t.Fatal("embedded doc missing title")
	}

	if LoadDoc("") != doc {
		t.Fatal("empty folder should return embedded doc")
	}
}
