package reconcile

import (
	"context"
	"fmt"

	"github.com/anu-001/netflix-marketing-analytics/core/tracking"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/identity"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize is used when no batch size is configured.
const DefaultBatchSize = 500

// Summary is the aggregate result of one coordinator run.
type Summary struct {
	tracking.Counts
	Batches int `json:"batches"`
}

// Coordinator drives the engine over the unprocessed staging set in
// batches. Row data mutations commit per row (inside the engine); the
// processed flags of a batch commit together afterwards, so an interrupted
// run leaves at most one batch with mixed flags and re-running simply
// picks up every row still marked unprocessed.
type Coordinator struct {
	db      *gorm.DB
	adapter RoleAdapter
	tracker *tracking.Tracker
	logger  *zap.Logger
}

// NewCoordinator creates a coordinator for one role.
func NewCoordinator(db *gorm.DB, adapter RoleAdapter, tracker *tracking.Tracker, logger *zap.Logger) *Coordinator {
	return &Coordinator{db: db, adapter: adapter, tracker: tracker, logger: logger}
}

// Run processes every unprocessed staging row in batches of batchSize and
// returns aggregate counts. Per-row failures are counted and left for the
// next run; only infrastructure failures (batch select, flag commit,
// cancellation) abort the run, finalizing its ledger entry as failed.
func (c *Coordinator) Run(ctx context.Context, batchSize int) (Summary, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	run := c.tracker.Start(c.adapter.RelationTable(),
		fmt.Sprintf("populate %s from %s", c.adapter.RelationTable(), c.adapter.StagingTable()))

	cache := identity.NewCache(c.db, c.adapter.Name(), c.adapter.RoleColumn())
	if err := cache.Preload(); err != nil {
		c.tracker.Finish(run, tracking.StatusFailed, tracking.Counts{}, err.Error())
		return Summary{}, err
	}
	people, roles, titles := cache.Sizes()
	c.logger.Info("identity cache preloaded",
		zap.String("role", c.adapter.Name()),
		zap.Int("people", people),
		zap.Int("roles", roles),
		zap.Int("titles", titles))

	engine := NewEngine(c.db, cache, c.adapter, c.logger)

	summary := Summary{}
	var cursor uint

	for {
		if err := ctx.Err(); err != nil {
			c.tracker.Finish(run, tracking.StatusFailed, summary.Counts, err.Error())
			return summary, fmt.Errorf("run canceled: %w", err)
		}

		// Cursor pagination keeps the scan stable: processed rows drop out
		// of the predicate and failed rows are left behind the cursor
		// instead of being re-selected forever within one run.
		var rows []models.StagingCredit
		err := c.db.WithContext(ctx).Table(c.adapter.StagingTable()).
			Where("processed = ? AND id > ?", false, cursor).
			Order("id ASC").
			Limit(batchSize).
			Find(&rows).Error
		if err != nil {
			err = fmt.Errorf("failed to select staging batch from %s: %w", c.adapter.StagingTable(), err)
			c.tracker.Finish(run, tracking.StatusFailed, summary.Counts, err.Error())
			return summary, err
		}
		if len(rows) == 0 {
			break
		}

		summary.Batches++
		doneIDs := make([]uint, 0, len(rows))

		for _, row := range rows {
			result := engine.Reconcile(row)
			switch result.Outcome {
			case OutcomeCreated:
				summary.Processed++
				summary.Created++
			case OutcomeDuplicate, OutcomeSkippedTitle, OutcomeSkippedName:
				summary.Processed++
				summary.Skipped++
			case OutcomeFailed:
				summary.Failed++
			}
			if result.Outcome.Terminal() {
				doneIDs = append(doneIDs, row.ID)
			}
		}
		cursor = rows[len(rows)-1].ID

		if len(doneIDs) > 0 {
			err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return tx.Table(c.adapter.StagingTable()).
					Where("id IN ?", doneIDs).
					Update("processed", true).Error
			})
			if err != nil {
				err = fmt.Errorf("failed to commit processed flags for %s: %w", c.adapter.StagingTable(), err)
				c.tracker.Finish(run, tracking.StatusFailed, summary.Counts, err.Error())
				return summary, err
			}
		}

		c.tracker.Update(run, summary.Counts)
		c.logger.Info("batch complete",
			zap.String("role", c.adapter.Name()),
			zap.Int("batch", summary.Batches),
			zap.Int("rows", len(rows)),
			zap.Int("created", summary.Created),
			zap.Int("skipped", summary.Skipped),
			zap.Int("failed", summary.Failed))
	}

	c.tracker.Finish(run, tracking.StatusCompleted, summary.Counts, "")
	return summary, nil
}
