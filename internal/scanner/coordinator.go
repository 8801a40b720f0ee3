package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"duetrack/internal/filter"
	"duetrack/internal/model"
	"duetrack/internal/recon"
	"duetrack/internal/store"
)

// Coordinator 扫描协调器：发现 -> 分类 -> 过滤 -> 建档合并
type Coordinator struct {
	store *store.Store
	mu    sync.Mutex // 同一时刻只允许一个扫描
}

// NewCoordinator 创建扫描协调器
func NewCoordinator(store *store.Store) *Coordinator {
	return &Coordinator{store: store}
}

// ScanOptions 扫描选项
type ScanOptions struct {
	Folder      string
	Today       time.Time
	Adjust      filter.AdjustTable
	GracePeriod time.Duration
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"` // start/file_start/file_done/warning/kind_done/done/cancelled/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ScanReport 单次扫描汇总
type ScanReport struct {
	RunID        string                         `json:"runId"`
	TotalFiles   int                            `json:"totalFiles"`
	ScannedFiles int                            `json:"scannedFiles"`
	SkippedFiles int                            `json:"skippedFiles"`
	SurvivorRows int                            `json:"survivorRows"`
	KindStats    map[model.FileKind]recon.Stats `json:"kindStats"`
	Duration     time.Duration                  `json:"duration"`
}

// Scan 启动后台扫描，返回进度通道
//
// 取消通过 ctx 实现，在工作簿之间检查；进行中的单个工作簿读取
// 不会被截断。取消后部分结果整体丢弃（不做缺失判定、不记成功日志）。
func (c *Coordinator) Scan(ctx context.Context, opts ScanOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.mu.Lock()
		defer c.mu.Unlock()
		c.doScan(ctx, opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doScan(ctx context.Context, opts ScanOptions, ch chan ProgressEvent) {
	startTime := time.Now()
	runID := uuid.New().String()

	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	if opts.Adjust == nil {
		opts.Adjust = filter.DefaultAdjustTable()
	}

	logID, err := c.store.CreateScanLog(runID, opts.Folder)
	if err != nil {
		c.send(ch, ProgressEvent{Type: "error", Message: fmt.Sprintf("记录扫描日志失败: %v", err), Timestamp: time.Now()})
		return
	}

	report := &ScanReport{
		RunID:     runID,
		KindStats: make(map[model.FileKind]recon.Stats),
	}

	c.send(ch, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始扫描数据目录: %s", opts.Folder),
		Data:      map[string]string{"run_id": runID},
		Timestamp: time.Now(),
	})

	paths, err := DiscoverWorkbooks(opts.Folder)
	if err != nil {
		c.finish(ch, logID, report, "error", fmt.Sprintf("扫描数据目录失败: %v", err))
		return
	}
	report.TotalFiles = len(paths)

	// 按类型聚合存活行；openFailed 记录读取失败的类型，
	// 这些类型本次不做缺失判定
	survivors := make(map[model.FileKind][]*model.RowRecord)
	failedKinds := make(map[model.FileKind]bool)
	anyOpenFailure := false

	for _, path := range paths {
		if ctx.Err() != nil {
			c.finish(ch, logID, report, "cancelled", "扫描已取消，部分结果丢弃")
			return
		}

		c.send(ch, ProgressEvent{
			Type:      "file_start",
			Message:   fmt.Sprintf("正在处理: %s", filepath.Base(path)),
			Timestamp: time.Now(),
		})

		kind, rows, werr := c.processWorkbook(path, opts, survivors)
		if werr != nil {
			if kind.Valid() {
				failedKinds[kind] = true
			} else {
				anyOpenFailure = true
			}
			report.SkippedFiles++
			c.send(ch, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("跳过工作簿: %v", werr),
				Timestamp: time.Now(),
			})
			continue
		}
		if !kind.Valid() {
			// 未识别的文件直接忽略
			report.SkippedFiles++
			continue
		}

		report.ScannedFiles++
		report.SurvivorRows += rows
		c.send(ch, ProgressEvent{
			Type:    "file_done",
			Message: fmt.Sprintf("%s: %s，%d 条到期", filepath.Base(path), kind, rows),
			Data: map[string]interface{}{
				"file_kind":     int(kind),
				"survivor_rows": rows,
			},
			Timestamp: time.Now(),
		})
	}

	// 全部存活行就绪后统一合并：同类型的 upsert 先于缺失判定
	reconciler := recon.New(c.store, opts.GracePeriod)
	now := time.Now()
	var newTasks, archivedTasks int

	for _, kind := range model.AllKinds {
		detectMissing := !anyOpenFailure && !failedKinds[kind]
		stats, err := reconciler.Apply(kind, survivors[kind], now, detectMissing)
		if err != nil {
			c.finish(ch, logID, report, "error", fmt.Sprintf("合并 %s 失败: %v", kind, err))
			return
		}
		report.KindStats[kind] = stats
		newTasks += stats.Created
		archivedTasks += stats.Archived

		c.send(ch, ProgressEvent{
			Type:      "kind_done",
			Message:   fmt.Sprintf("%s: 新建 %d，刷新 %d，缺失 %d，归档 %d", kind, stats.Created, stats.Refreshed, stats.Missing, stats.Archived),
			Data:      stats,
			Timestamp: time.Now(),
		})
	}

	report.Duration = time.Since(startTime)

	_ = c.store.FinishScanLog(logID, store.ScanLogResult{
		TotalFiles:    report.TotalFiles,
		ScannedFiles:  report.ScannedFiles,
		SkippedFiles:  report.SkippedFiles,
		SurvivorRows:  report.SurvivorRows,
		NewTasks:      newTasks,
		ArchivedTasks: archivedTasks,
		Status:        "done",
	})

	c.send(ch, ProgressEvent{
		Type:      "done",
		Message:   "扫描完成",
		Data:      report,
		Timestamp: time.Now(),
	})
}

// processWorkbook 处理单个工作簿：分类、过滤、提取记录
//
// 返回的 kind 在分类成功后即有效，读取失败也带回 kind 供缺失判定降级。
func (c *Coordinator) processWorkbook(path string, opts ScanOptions, survivors map[model.FileKind][]*model.RowRecord) (model.FileKind, int, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return 0, 0, &WorkbookError{Path: path, Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return 0, 0, &WorkbookError{Path: path, Err: fmt.Errorf("no sheets")}
	}

	// 约定：首个工作表承载计划数据
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return 0, 0, &WorkbookError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}

	kind, projectID, ok := Classify(path, rows[0])
	if !ok {
		return 0, 0, nil
	}

	due := filter.DueRows(kind, projectID, rows, opts.Today, opts.Adjust)
	count := 0
	for _, rowNo := range due {
		r := ExtractRecord(kind, projectID, path, rows, rowNo)
		if r.InterfaceID == "" {
			continue
		}
		survivors[kind] = append(survivors[kind], r)
		count++
	}

	return kind, count, nil
}

func (c *Coordinator) finish(ch chan ProgressEvent, logID int64, report *ScanReport, status, msg string) {
	_ = c.store.FinishScanLog(logID, store.ScanLogResult{
		TotalFiles:   report.TotalFiles,
		ScannedFiles: report.ScannedFiles,
		SkippedFiles: report.SkippedFiles,
		SurvivorRows: report.SurvivorRows,
		Status:       status,
		ErrorMessage: msg,
	})

	c.send(ch, ProgressEvent{Type: status, Message: msg, Timestamp: time.Now()})
}

// send 非阻塞发送，通道已满时丢弃事件
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
