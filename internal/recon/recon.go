// Package recon 把一次扫描的存活行合并进任务登记库。
//
// 合并按单一文件类型进行：先对全部存活行做 upsert（先于任何缺失判定，
// 保证同一次扫描内跨文件移动的行被视为"在场"），再对登记库中未出现的
// 业务身份做缺失标记与过期归档。
package recon

import (
	"fmt"
	"time"

	"duetrack/internal/keying"
	"duetrack/internal/model"
	"duetrack/internal/store"
)

// DefaultGracePeriod 缺失宽限期：身份从源表消失超过该时长后归档
const DefaultGracePeriod = 30 * 24 * time.Hour

// Reconciler 扫描结果与登记库的合并器
type Reconciler struct {
	store *store.Store
	grace time.Duration
}

// New 创建合并器；grace <= 0 时使用默认宽限期
func New(s *store.Store, grace time.Duration) *Reconciler {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &Reconciler{store: s, grace: grace}
}

// Stats 单次合并的统计
type Stats struct {
	Survivors int `json:"survivors"`
	Created   int `json:"created"`
	Refreshed int `json:"refreshed"`
	Missing   int `json:"missing"`
	Archived  int `json:"archived"`
}

// Apply 合并单一文件类型的存活行
//
// detectMissing 为 false 时跳过缺失判定（该类型本次扫描有工作簿读取
// 失败时，缺失不可信，宁可不判）。同一业务身份在存活集中重复出现时
// 视为同一任务，可变字段后写覆盖。
func (r *Reconciler) Apply(kind model.FileKind, survivors []*model.RowRecord, now time.Time, detectMissing bool) (Stats, error) {
	stats := Stats{Survivors: len(survivors)}

	seen := make(map[string]bool, len(survivors))

	for _, row := range survivors {
		bid := keying.RowBusinessID(row)
		existing, err := r.store.GetTaskByBusinessID(row.FileKind, row.ProjectID, row.InterfaceID)
		newID := keying.RowTaskID(row)

		if err != nil || existing == nil {
			// 首次观察：建档
			t := &model.Task{
				ID:                newID,
				FileKind:          row.FileKind,
				ProjectID:         row.ProjectID,
				InterfaceID:       row.InterfaceID,
				Department:        row.Department,
				Role:              row.Role,
				InterfaceTime:     row.InterfaceTime,
				ResponsiblePerson: row.ResponsiblePerson,
				Status:            model.StatusOpen,
				FirstSeenAt:       now,
				LastSeenAt:        now,
				SourceFile:        row.SourceFile,
				RowIndex:          row.RowIndex,
			}
			if err := r.store.InsertTask(t); err != nil {
				return stats, fmt.Errorf("insert %s: %w", bid, err)
			}
			stats.Created++
			seen[bid] = true
			continue
		}

		// 再次观察：只刷新可变业务字段，进度字段不碰
		if err := r.store.RefreshTask(row.FileKind, row.ProjectID, row.InterfaceID, newID, row, now); err != nil {
			return stats, fmt.Errorf("refresh %s: %w", bid, err)
		}
		// 身份重新出现时撤销归档；已确认任务保持归档不复活
		if existing.Status == model.StatusArchived && existing.ConfirmedAt == nil {
			if err := r.store.UnarchiveTask(newID); err != nil {
				return stats, fmt.Errorf("unarchive %s: %w", bid, err)
			}
		}
		stats.Refreshed++
		seen[bid] = true
	}

	if !detectMissing {
		return stats, nil
	}

	// 缺失判定：登记库里有、本次存活集里没有的身份
	tasks, err := r.store.ListTasks(store.TaskQueryOptions{
		FileKind:        &kind,
		IncludeArchived: true,
	})
	if err != nil {
		return stats, fmt.Errorf("list tasks: %w", err)
	}

	for _, t := range tasks {
		bid := keying.BusinessID(t.FileKind, t.ProjectID, t.InterfaceID)
		if seen[bid] {
			continue
		}
		if t.Status == model.StatusArchived {
			continue
		}

		if t.MissingSince == nil {
			if err := r.store.MarkMissing(t.ID, now); err != nil {
				return stats, fmt.Errorf("mark missing %s: %w", bid, err)
			}
			stats.Missing++
			continue
		}

		if now.Sub(*t.MissingSince) >= r.grace && t.Status != model.StatusConfirmed {
			if err := r.store.ArchiveTask(t.ID, model.ArchiveReasonMissing); err != nil {
				return stats, fmt.Errorf("archive %s: %w", bid, err)
			}
			stats.Archived++
		}
	}

	return stats, nil
}
