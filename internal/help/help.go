// Package help 加载使用说明文档并提供按角色的章节跳转。
package help

import (
	_ "embed"
	"os"
	"path/filepath"
)

//go:embed doc/4_使用说明.md
var embeddedDoc string

// DocRelPath 数据目录下使用说明的相对路径
const DocRelPath = "document/4_使用说明.md"

// roleSections 角色 -> 说明文档章节标题
var roleSections = map[string]string{
	"设计人员":    "2-设计人员使用指南",
	"一室主任":    "3-室主任使用指南",
	"二室主任":    "3-室主任使用指南",
	"建筑总图室主任": "3-室主任使用指南",
	"所领导":     "4-所领导使用指南",
	"管理员":     "5-管理员使用指南",
}

// LoadDoc 读取使用说明
//
// 优先读数据目录下的 document/4_使用说明.md，不存在时退回内置版本。
func LoadDoc(dataFolder string) string {
	if dataFolder != "" {
		path := filepath.Join(dataFolder, DocRelPath)
		if data, err := os.ReadFile(path); err == nil {
			return string(data)
		}
	}
	return embeddedDoc
}

// SectionFor 按角色名返回应跳转的章节标题；未知角色返回空串（不跳转）
func SectionFor(role string) string {
	return roleSections[role]
}
