package model

import "time"

// TaskStatus 任务生命周期状态
type TaskStatus string

const (
	StatusOpen      TaskStatus = "open"      // 新建，未指派
	StatusAssigned  TaskStatus = "assigned"  // 已指派责任人
	StatusCompleted TaskStatus = "completed" // 已填写回文单号
	StatusConfirmed TaskStatus = "confirmed" // 上级已确认
	StatusArchived  TaskStatus = "archived"  // 已归档
)

// 界面展示状态（回读时由 status/completed_at/confirmed_at 推导）
const (
	DisplayPending      = "待完成"
	DisplayAwaitConfirm = "待上级确认"
	DisplayConfirmed    = "已确认"
	DisplayArchived     = "已归档"
)

// ArchiveReasonMissing 因源表缺失而归档
const ArchiveReasonMissing = "missing_from_source"

// Task 任务登记记录（SQLite tasks 表）
type Task struct {
	ID          string   `json:"id"` // 行级哈希，行移动后会变化
	FileKind    FileKind `json:"fileKind"`
	ProjectID   string   `json:"projectId"`
	InterfaceID string   `json:"interfaceId"`

	Department        string     `json:"department"`
	Role              string     `json:"role"`
	InterfaceTime     *time.Time `json:"interfaceTime"`
	ResponsiblePerson string     `json:"responsiblePerson"`

	Status   TaskStatus `json:"status"`
	ReplyNo  string     `json:"replyNo"` // 回文单号
	Assigner string     `json:"assignedBy"`

	AssignedAt  *time.Time `json:"assignedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	ConfirmedBy string     `json:"confirmedBy"`
	ConfirmedAt *time.Time `json:"confirmedAt"`

	FirstSeenAt   time.Time  `json:"firstSeenAt"`
	LastSeenAt    time.Time  `json:"lastSeenAt"`
	MissingSince  *time.Time `json:"missingSince"`
	ArchiveReason string     `json:"archiveReason"`

	SourceFile string `json:"sourceFile"`
	RowIndex   int    `json:"rowIndex"`
}

// DisplayStatus 按固定映射表推导展示状态
//
//	open/assigned                  -> 待完成
//	completed (未确认)             -> 待上级确认
//	confirmed                      -> 已确认
//	archived                       -> 已归档
func (t *Task) DisplayStatus() string {
	switch t.Status {
	case StatusArchived:
		return DisplayArchived
	case StatusConfirmed:
		return DisplayConfirmed
	case StatusCompleted:
		return DisplayAwaitConfirm
	default:
		return DisplayPending
	}
}
