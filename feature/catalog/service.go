package catalog

import (
	"context"
	"fmt"

	"github.com/anu-001/netflix-marketing-analytics/core/database"
	"github.com/anu-001/netflix-marketing-analytics/core/storage"
	"github.com/anu-001/netflix-marketing-analytics/core/tracking"
	"github.com/anu-001/netflix-marketing-analytics/core/utils"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/reconcile"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/staging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// expectedSchema lists the tables (and required columns) the pipeline
// depends on. The schema is managed externally; a missing table here is
// the fatal-failure class, caught up front by Verify.
var expectedSchema = map[string][]string{
	"people":            {"person_id", "name", "is_synthetic"},
	"actors":            {"actor_id"},
	"directors":         {"director_id"},
	"titles":            {"title_id", "code"},
	"actors_titles":     {"actor_id", "title_id"},
	"directors_titles":  {"director_id", "title_id"},
	"processing_status": {"status_id", "table_name", "status", "records_processed", "records_created", "records_skipped", "start_time", "end_time"},
}

// Service is the operational surface of the credit pipeline: staging
// rebuilds, batch processing, status, run history, and schema verification.
type Service struct {
	db      *gorm.DB
	client  storage.Client // nil when no object storage is configured
	bucket  string
	cfg     Config
	tracker *tracking.Tracker
	logger  *zap.Logger
}

// NewService creates the pipeline service. client may be nil; object
// sources then report an error instead of being selectable.
func NewService(db *gorm.DB, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		client:  client,
		bucket:  bucket,
		cfg:     cfg,
		tracker: tracking.NewTracker(db, logger),
		logger:  logger,
	}
}

// StagingStatus reports progress over one role's staging table.
type StagingStatus struct {
	Role      string `json:"role"`
	Table     string `json:"table"`
	Exists    bool   `json:"exists"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Remaining int    `json:"remaining"`
}

// StagingStatus returns processed/remaining counts for a role's staging
// table. A missing table is not an error: Exists is false and counts are
// zero (the table has simply never been built).
func (s *Service) StagingStatus(role string) (*StagingStatus, error) {
	adapter, err := reconcile.AdapterFor(role)
	if err != nil {
		return nil, err
	}
	status := &StagingStatus{Role: role, Table: adapter.StagingTable()}

	if !s.db.Migrator().HasTable(adapter.StagingTable()) {
		return status, nil
	}
	status.Exists = true

	// Raw scan: SUM/COUNT come back as driver-dependent types.
	row := map[string]any{}
	err = s.db.Table(adapter.StagingTable()).
		Select("COUNT(*) AS total, SUM(CASE WHEN processed THEN 1 ELSE 0 END) AS done").
		Take(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count staging rows in %s: %w", adapter.StagingTable(), err)
	}
	status.Total = utils.ToInt(row["total"])
	status.Processed = utils.ToInt(row["done"])
	status.Remaining = status.Total - status.Processed
	return status, nil
}

// BuildStaging rebuilds a role's staging table from the configured source
// and returns the number of staging rows written.
func (s *Service) BuildStaging(ctx context.Context, role string) (int, error) {
	adapter, err := reconcile.AdapterFor(role)
	if err != nil {
		return 0, err
	}

	var source staging.SourceReader
	switch s.cfg.Source {
	case SourceObjectKind:
		if s.client == nil {
			return 0, fmt.Errorf("pipeline source is %q but no object storage is configured", SourceObjectKind)
		}
		source = staging.NewObjectSource(s.client, s.bucket, s.cfg.SourceObject, "show_id", adapter.CreditColumn())
	case SourceTableKind, "":
		source = staging.NewTableSource(s.db, s.cfg.SourceTable, adapter.CreditColumn())
	default:
		return 0, fmt.Errorf("unknown pipeline source %q (want %s or %s)", s.cfg.Source, SourceTableKind, SourceObjectKind)
	}

	extractor := staging.NewExtractor(s.db, s.tracker, s.logger)
	return extractor.Build(ctx, source, adapter.StagingTable())
}

// Process runs the reconciliation coordinator over a role's unprocessed
// staging rows. batchSize <= 0 falls back to the configured size.
func (s *Service) Process(ctx context.Context, role string, batchSize int) (reconcile.Summary, error) {
	adapter, err := reconcile.AdapterFor(role)
	if err != nil {
		return reconcile.Summary{}, err
	}
	if !s.db.Migrator().HasTable(adapter.StagingTable()) {
		return reconcile.Summary{}, fmt.Errorf("staging table %s does not exist; run a staging build first", adapter.StagingTable())
	}
	if batchSize <= 0 {
		batchSize = s.cfg.BatchSize
	}
	coordinator := reconcile.NewCoordinator(s.db, adapter, s.tracker, s.logger)
	return coordinator.Run(ctx, batchSize)
}

// RunSummary returns per-table aggregates over the run ledger.
func (s *Service) RunSummary() ([]tracking.TableSummary, error) {
	return s.tracker.Summary()
}

// LatestRuns returns recent ledger entries, optionally filtered by table.
func (s *Service) LatestRuns(tableName string, limit int) ([]models.ProcessingRun, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.tracker.Latest(tableName, limit)
}

// Verify checks that every expected catalog table exists with its required
// columns.
func (s *Service) Verify() ([]database.TableReport, error) {
	return database.VerifyTables(s.db, expectedSchema)
}
