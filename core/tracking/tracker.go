package tracking

import (
	"time"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run statuses recorded in the processing_status ledger.
const (
	StatusStarted    = "started"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Counts aggregates the outcome counters of a run.
type Counts struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Tracker records processing runs in the ledger. Ledger writes are
// observability, not correctness: every method tolerates a missing run and
// callers are expected to log-and-continue on error rather than abort the
// data processing they are tracking.
type Tracker struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTracker creates a tracker writing to the processing_status table.
func NewTracker(db *gorm.DB, logger *zap.Logger) *Tracker {
	return &Tracker{db: db, logger: logger}
}

// Start creates a new ledger row in status "started" and returns it.
// On failure it logs a warning and returns nil; the nil run is accepted by
// Update and Finish so the caller does not need to branch.
func (t *Tracker) Start(tableName, description string) *models.ProcessingRun {
	run := &models.ProcessingRun{
		RunUID:      uuid.NewString(),
		TableName:   tableName,
		Description: description,
		Status:      StatusStarted,
		StartTime:   time.Now(),
	}
	if err := t.db.Create(run).Error; err != nil {
		t.logger.Warn("failed to record run start; continuing without ledger",
			zap.String("table", tableName), zap.Error(err))
		return nil
	}
	t.logger.Info("started processing run",
		zap.Uint("run_id", run.StatusID),
		zap.String("run_uid", run.RunUID),
		zap.String("table", tableName))
	return run
}

// Update moves the run to status "processing" and stores current counters.
func (t *Tracker) Update(run *models.ProcessingRun, counts Counts) {
	if run == nil {
		return
	}
	run.Status = StatusProcessing
	t.save(run, counts, nil)
}

// Finish finalizes the run as completed or failed, recording the end time
// and the error message for failed runs.
func (t *Tracker) Finish(run *models.ProcessingRun, status string, counts Counts, errMessage string) {
	if run == nil {
		return
	}
	now := time.Now()
	run.Status = status
	run.EndTime = &now
	var msg *string
	if errMessage != "" {
		truncated := errMessage
		if len(truncated) > 1024 {
			truncated = truncated[:1024]
		}
		msg = &truncated
	}
	t.save(run, counts, msg)
	t.logger.Info("finished processing run",
		zap.Uint("run_id", run.StatusID),
		zap.String("table", run.TableName),
		zap.String("status", status),
		zap.Int("processed", counts.Processed),
		zap.Int("created", counts.Created),
		zap.Int("skipped", counts.Skipped),
		zap.Int("failed", counts.Failed))
}

func (t *Tracker) save(run *models.ProcessingRun, counts Counts, errMessage *string) {
	run.RecordsProcessed = counts.Processed
	run.RecordsCreated = counts.Created
	run.RecordsSkipped = counts.Skipped
	run.RecordsFailed = counts.Failed
	if errMessage != nil {
		run.ErrorMessage = errMessage
	}
	if err := t.db.Save(run).Error; err != nil {
		t.logger.Warn("failed to update run ledger",
			zap.Uint("run_id", run.StatusID), zap.Error(err))
	}
}

// TableSummary aggregates all runs recorded for one target table.
type TableSummary struct {
	TableName      string     `json:"table_name"`
	TotalRuns      int        `json:"total_runs"`
	CompletedRuns  int        `json:"completed_runs"`
	FailedRuns     int        `json:"failed_runs"`
	TotalProcessed int        `json:"total_processed"`
	TotalCreated   int        `json:"total_created"`
	LastRunTime    *time.Time `json:"last_run_time"`
}

// Summary returns per-table aggregates over the whole ledger, most
// recently active table first.
func (t *Tracker) Summary() ([]TableSummary, error) {
	var rows []TableSummary
	err := t.db.Model(&models.ProcessingRun{}).
		Select(`table_name,
			COUNT(*) AS total_runs,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed_runs,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS failed_runs,
			SUM(records_processed) AS total_processed,
			SUM(records_created) AS total_created,
			MAX(created_at) AS last_run_time`, StatusCompleted, StatusFailed).
		Group("table_name").
		Order("last_run_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Latest returns the most recent runs for a table, newest first.
// An empty tableName returns runs across all tables.
func (t *Tracker) Latest(tableName string, limit int) ([]models.ProcessingRun, error) {
	q := t.db.Model(&models.ProcessingRun{}).Order("created_at DESC").Limit(limit)
	if tableName != "" {
		q = q.Where("table_name = ?", tableName)
	}
	var runs []models.ProcessingRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
