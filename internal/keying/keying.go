// Package keying 负责为存活行生成登记库键值。
//
// 业务身份 (file_kind, project_id, interface_id) 是任务的逻辑主键，
// 跨工作簿改名、行移动保持稳定；行级哈希 id 额外绑定 (source_file,
// row_index)，行移动后随之变化。
package keying

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"duetrack/internal/model"
)

// TaskID 行级哈希：sha256 十六进制摘要截断 16 位
func TaskID(kind model.FileKind, projectID, interfaceID, sourceFile string, rowIndex int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s|%s|%d",
		kind, projectID, interfaceID, sourceFile, rowIndex)))
	return hex.EncodeToString(sum[:])[:16]
}

// BusinessID 逻辑身份串
func BusinessID(kind model.FileKind, projectID, interfaceID string) string {
	return fmt.Sprintf("%d|%s|%s", kind, projectID, interfaceID)
}

// RowTaskID 从行记录生成行级哈希
func RowTaskID(r *model.RowRecord) string {
	return TaskID(r.FileKind, r.ProjectID, r.InterfaceID, r.SourceFile, r.RowIndex)
}

// RowBusinessID 从行记录生成逻辑身份串
func RowBusinessID(r *model.RowRecord) string {
	return BusinessID(r.FileKind, r.ProjectID, r.InterfaceID)
}
