package store

import "fmt"

// CreateScanLog 创建扫描日志，返回 scan_log_id
func (s *Store) CreateScanLog(runID, folder string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO scan_logs (run_id, folder, status) VALUES (?, ?, 'running')
	`, runID, folder)
	if err != nil {
		return 0, fmt.Errorf("failed to create scan log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan log id: %w", err)
	}
	return id, nil
}

// ScanLogResult 扫描结果统计
type ScanLogResult struct {
	TotalFiles    int
	ScannedFiles  int
	SkippedFiles  int
	SurvivorRows  int
	NewTasks      int
	ArchivedTasks int
	Status        string // done/cancelled/error
	ErrorMessage  string
}

// FinishScanLog 完成扫描日志更新
func (s *Store) FinishScanLog(id int64, r ScanLogResult) error {
	_, err := s.db.Exec(`
		UPDATE scan_logs SET
			total_files = ?,
			scanned_files = ?,
			skipped_files = ?,
			survivor_rows = ?,
			new_tasks = ?,
			archived_tasks = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, r.TotalFiles, r.ScannedFiles, r.SkippedFiles, r.SurvivorRows,
		r.NewTasks, r.ArchivedTasks, r.Status, r.ErrorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to finish scan log: %w", err)
	}
	return nil
}

// LastScanTime 最近一次成功扫描的完成时间（无记录返回空串）
func (s *Store) LastScanTime() (string, error) {
	var ts string
	err := s.db.QueryRow(`
		SELECT COALESCE(completed_at, '') FROM scan_logs
		WHERE status = 'done' ORDER BY id DESC LIMIT 1
	`).Scan(&ts)
	if err != nil {
		return "", nil
	}
	return ts, nil
}
