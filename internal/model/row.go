package model

import "time"

// RowRecord 单条过滤存活行（从工作簿提取的类型化记录）
type RowRecord struct {
	FileKind          FileKind          `json:"fileKind"`
	ProjectID         string            `json:"projectId"`
	InterfaceID       string            `json:"interfaceId"`
	Department        string            `json:"department"`
	Role              string            `json:"role"`
	InterfaceTime     *time.Time        `json:"interfaceTime"`
	ResponsiblePerson string            `json:"responsiblePerson"`
	SourceFile        string            `json:"sourceFile"` // 绝对路径
	RowIndex          int               `json:"rowIndex"`   // 1-based 原始行号
	Extras            map[string]string `json:"extras,omitempty"`
}
