package staging

import (
	"context"
	"fmt"
	"strings"

	"github.com/anu-001/netflix-marketing-analytics/core/tracking"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// insertBatchSize bounds one multi-row staging insert.
const insertBatchSize = 1000

// placeholderToken is dropped during extraction: the upstream export uses
// the literal "unknown" where a credit list is missing.
const placeholderToken = "unknown"

// Extractor rebuilds a staging table from the denormalized export.
type Extractor struct {
	db      *gorm.DB
	tracker *tracking.Tracker
	logger  *zap.Logger
}

// NewExtractor creates a staging extractor.
func NewExtractor(db *gorm.DB, tracker *tracking.Tracker, logger *zap.Logger) *Extractor {
	return &Extractor{db: db, tracker: tracker, logger: logger}
}

// Build truncates and rebuilds the staging table from the source, emitting
// one row per (title, credit name) pair. Rebuilding from scratch is what
// makes the operation idempotent: re-running yields the same staging set
// with every processed flag reset to false.
func (e *Extractor) Build(ctx context.Context, source SourceReader, stagingTable string) (int, error) {
	run := e.tracker.Start(stagingTable, "rebuild staging from "+source.Name())
	counts := tracking.Counts{}

	rows, err := source.Read(ctx)
	if err != nil {
		e.tracker.Finish(run, tracking.StatusFailed, counts, err.Error())
		return 0, err
	}
	counts.Processed = len(rows)

	credits := SplitCredits(rows)
	counts.Created = len(credits)

	if err := e.rebuildTable(stagingTable); err != nil {
		e.tracker.Finish(run, tracking.StatusFailed, counts, err.Error())
		return 0, err
	}

	if len(credits) > 0 {
		if err := e.db.WithContext(ctx).Table(stagingTable).CreateInBatches(credits, insertBatchSize).Error; err != nil {
			err = fmt.Errorf("failed to insert staging rows into %s: %w", stagingTable, err)
			e.tracker.Finish(run, tracking.StatusFailed, counts, err.Error())
			return 0, err
		}
	} else {
		e.logger.Warn("no credit data found in source", zap.String("source", source.Name()))
	}

	e.tracker.Finish(run, tracking.StatusCompleted, counts, "")
	e.logger.Info("staging table rebuilt",
		zap.String("table", stagingTable),
		zap.Int("source_rows", len(rows)),
		zap.Int("staging_rows", len(credits)))
	return len(credits), nil
}

func (e *Extractor) rebuildTable(stagingTable string) error {
	migrator := e.db.Table(stagingTable).Migrator()
	if migrator.HasTable(stagingTable) {
		if err := migrator.DropTable(stagingTable); err != nil {
			return fmt.Errorf("failed to drop staging table %s: %w", stagingTable, err)
		}
	}
	if err := e.db.Table(stagingTable).AutoMigrate(&models.StagingCredit{}); err != nil {
		return fmt.Errorf("failed to create staging table %s: %w", stagingTable, err)
	}
	return nil
}

// SplitCredits expands export rows into staging rows: the credit string is
// split on commas, tokens are trimmed, and empty or placeholder tokens are
// dropped. A title whose credit string yields no tokens contributes no rows.
func SplitCredits(rows []SourceRow) []models.StagingCredit {
	credits := make([]models.StagingCredit, 0, len(rows))
	for _, row := range rows {
		for _, token := range strings.Split(row.Credits, ",") {
			name := strings.TrimSpace(token)
			if name == "" || strings.EqualFold(name, placeholderToken) {
				continue
			}
			credits = append(credits, models.StagingCredit{
				ShowID: row.ShowID,
				Name:   name,
			})
		}
	}
	return credits
}
