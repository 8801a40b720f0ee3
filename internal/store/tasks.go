package store

import (
	"database/sql"
	"fmt"
	"time"

	"duetrack/internal/model"
)

const taskColumns = `
	id, file_kind, project_id, interface_id,
	department, role, interface_time, responsible_person,
	status, reply_no, assigned_by, assigned_at,
	completed_at, confirmed_by, confirmed_at,
	first_seen_at, last_seen_at, missing_since, archive_reason,
	source_file, row_index`

// InsertTask 插入首次观察到的任务
func (s *Store) InsertTask(t *model.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (
			id, file_kind, project_id, interface_id,
			department, role, interface_time, responsible_person,
			status, first_seen_at, last_seen_at, source_file, row_index
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID, int(t.FileKind), t.ProjectID, t.InterfaceID,
		t.Department, t.Role, timePtr(t.InterfaceTime), t.ResponsiblePerson,
		string(t.Status), t.FirstSeenAt, t.LastSeenAt, t.SourceFile, t.RowIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// RefreshTask 按业务身份刷新可变业务字段
//
// 只覆盖来源位置与业务字段并续期 last_seen_at、清空 missing_since；
// 进度字段（status/completed/confirmed/assigned/first_seen/archive_reason）
// 一律不碰。行移动后行级哈希随 (source_file, row_index) 更新。
func (s *Store) RefreshTask(kind model.FileKind, projectID, interfaceID string, newID string, r *model.RowRecord, now time.Time) error {
	_, err := s.db.Exec(`
		UPDATE tasks SET
			id = ?,
			department = ?,
			role = ?,
			interface_time = ?,
			responsible_person = ?,
			source_file = ?,
			row_index = ?,
			last_seen_at = ?,
			missing_since = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE file_kind = ? AND project_id = ? AND interface_id = ?
	`,
		newID, r.Department, r.Role, timePtr(r.InterfaceTime), r.ResponsiblePerson,
		r.SourceFile, r.RowIndex, now,
		int(kind), projectID, interfaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to refresh task: %w", err)
	}
	return nil
}

// UnarchiveTask 撤销归档（身份重新出现时；已确认任务除外，由调用方把关）
func (s *Store) UnarchiveTask(id string) error {
	_, err := s.db.Exec(`
		UPDATE tasks SET
			status = CASE WHEN completed_at IS NOT NULL THEN 'completed'
			              WHEN assigned_at IS NOT NULL THEN 'assigned'
			              ELSE 'open' END,
			archive_reason = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'archived'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to unarchive task: %w", err)
	}
	return nil
}

// MarkMissing 记录身份首次从源表消失的时间
func (s *Store) MarkMissing(id string, now time.Time) error {
	_, err := s.db.Exec(`
		UPDATE tasks SET missing_since = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND missing_since IS NULL
	`, now, id)
	if err != nil {
		return fmt.Errorf("failed to mark missing: %w", err)
	}
	return nil
}

// ArchiveTask 归档任务（已确认任务不归档，由调用方把关）
func (s *Store) ArchiveTask(id, reason string) error {
	_, err := s.db.Exec(`
		UPDATE tasks SET status = 'archived', archive_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status != 'confirmed'
	`, reason, id)
	if err != nil {
		return fmt.Errorf("failed to archive task: %w", err)
	}
	return nil
}

// AssignTask 指派责任人。幂等：重复指派只覆盖责任人与指派信息。
func (s *Store) AssignTask(id, person, assignedBy string, now time.Time) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET
			responsible_person = ?,
			assigned_by = ?,
			assigned_at = ?,
			status = CASE WHEN status = 'open' THEN 'assigned' ELSE status END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, person, assignedBy, now, id)
	if err != nil {
		return fmt.Errorf("failed to assign task: %w", err)
	}
	return requireRow(res, id)
}

// CompleteTask 填写回文单号，任务转入待上级确认。
//
// 只允许从 open/assigned 前进；已完成的任务重复提交仅更新回文单号。
func (s *Store) CompleteTask(id, replyNo string, now time.Time) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET
			reply_no = ?,
			status = CASE WHEN status IN ('open', 'assigned') THEN 'completed' ELSE status END,
			completed_at = COALESCE(completed_at, ?),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status != 'archived'
	`, replyNo, now, id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return requireRow(res, id)
}

// ConfirmTask 上级确认完成。要求任务已填回文单号。
func (s *Store) ConfirmTask(id, confirmer string, now time.Time) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET
			status = 'confirmed',
			confirmed_by = ?,
			confirmed_at = COALESCE(confirmed_at, ?),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status IN ('completed', 'confirmed')
	`, confirmer, now, id)
	if err != nil {
		return fmt.Errorf("failed to confirm task: %w", err)
	}
	return requireRow(res, id)
}

// GetTaskByID 按行级哈希取任务
func (s *Store) GetTaskByID(id string) (*model.Task, error) {
	row := s.db.QueryRow("SELECT"+taskColumns+" FROM tasks WHERE id = ?", id)
	return scanTaskRow(row)
}

// GetTaskByBusinessID 按业务身份取任务
func (s *Store) GetTaskByBusinessID(kind model.FileKind, projectID, interfaceID string) (*model.Task, error) {
	row := s.db.QueryRow("SELECT"+taskColumns+` FROM tasks
		WHERE file_kind = ? AND project_id = ? AND interface_id = ?`,
		int(kind), projectID, interfaceID)
	return scanTaskRow(row)
}

// TaskQueryOptions 任务列表查询选项
type TaskQueryOptions struct {
	FileKind        *model.FileKind
	Status          *model.TaskStatus
	IncludeArchived bool
}

// ListTasks 按选项列出任务，顺序固定（来源文件 + 行号）
func (s *Store) ListTasks(opts TaskQueryOptions) ([]*model.Task, error) {
	query := "SELECT" + taskColumns + " FROM tasks WHERE 1=1"
	args := []interface{}{}

	if opts.FileKind != nil {
		query += " AND file_kind = ?"
		args = append(args, int(*opts.FileKind))
	}
	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*opts.Status))
	} else if !opts.IncludeArchived {
		query += " AND status != 'archived'"
	}

	query += " ORDER BY source_file, row_index"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var results []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// CountTasks 统计任务数量
func (s *Store) CountTasks(opts TaskQueryOptions) (int, error) {
	query := "SELECT COUNT(*) FROM tasks WHERE 1=1"
	args := []interface{}{}

	if opts.FileKind != nil {
		query += " AND file_kind = ?"
		args = append(args, int(*opts.FileKind))
	}
	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*opts.Status))
	} else if !opts.IncludeArchived {
		query += " AND status != 'archived'"
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(sc rowScanner) (*model.Task, error) {
	t := &model.Task{}
	var (
		kind                             int
		department, role, reply          sql.NullString
		responsible, assignedBy          sql.NullString
		confirmedBy, archiveReason       sql.NullString
		sourceFile                       sql.NullString
		rowIndex                         sql.NullInt64
		interfaceTime, assignedAt        sql.NullTime
		completedAt, confirmedAt         sql.NullTime
		missingSince                     sql.NullTime
		status                           string
	)

	err := sc.Scan(
		&t.ID, &kind, &t.ProjectID, &t.InterfaceID,
		&department, &role, &interfaceTime, &responsible,
		&status, &reply, &assignedBy, &assignedAt,
		&completedAt, &confirmedBy, &confirmedAt,
		&t.FirstSeenAt, &t.LastSeenAt, &missingSince, &archiveReason,
		&sourceFile, &rowIndex,
	)
	if err != nil {
		return nil, err
	}

	t.FileKind = model.FileKind(kind)
	t.Status = model.TaskStatus(status)
	t.Department = department.String
	t.Role = role.String
	t.ResponsiblePerson = responsible.String
	t.ReplyNo = reply.String
	t.Assigner = assignedBy.String
	t.ConfirmedBy = confirmedBy.String
	t.ArchiveReason = archiveReason.String
	t.SourceFile = sourceFile.String
	t.RowIndex = int(rowIndex.Int64)
	t.InterfaceTime = nullTimePtr(interfaceTime)
	t.AssignedAt = nullTimePtr(assignedAt)
	t.CompletedAt = nullTimePtr(completedAt)
	t.ConfirmedAt = nullTimePtr(confirmedAt)
	t.MissingSince = nullTimePtr(missingSince)

	return t, nil
}

func scanTaskRow(row *sql.Row) (*model.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task not found")
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return t, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found or not in a valid state: %s", id)
	}
	return nil
}

func timePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
