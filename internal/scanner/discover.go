package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverWorkbooks 扫描数据目录下的候选工作簿
//
// 只认 .xlsx/.xlsm，跳过 Excel 临时文件（~$ 前缀）与 .registry 目录；
// 返回绝对路径并按字典序排序，保证扫描顺序确定。
func DiscoverWorkbooks(folder string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".registry" {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".xlsx" && ext != ".xlsm" {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
