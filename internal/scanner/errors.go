package scanner

import "fmt"

// WorkbookError 工作簿级失败（文件被锁、损坏等）
//
// 只中止当前工作簿，整个扫描继续。
type WorkbookError struct {
	Path string
	Err  error
}

func (e *WorkbookError) Error() string {
	return fmt.Sprintf("workbook %s: %v", e.Path, e.Err)
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}
