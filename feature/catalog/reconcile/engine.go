package reconcile

import (
	"strings"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/identity"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outcome classifies the result of reconciling one staging row.
type Outcome int

const (
	// OutcomeCreated means a new relationship row was inserted.
	OutcomeCreated Outcome = iota
	// OutcomeDuplicate means the relationship already existed.
	OutcomeDuplicate
	// OutcomeSkippedTitle means the natural title key resolved to nothing.
	OutcomeSkippedTitle
	// OutcomeSkippedName means the credit name was empty after normalization.
	OutcomeSkippedName
	// OutcomeFailed means the row's transaction rolled back; the row stays
	// unprocessed and is retried on the next run.
	OutcomeFailed
)

// Terminal reports whether the outcome means the row is done and its
// processed flag should be set. Failed rows are the only non-terminal case.
func (o Outcome) Terminal() bool { return o != OutcomeFailed }

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeSkippedTitle:
		return "skipped_missing_title"
	case OutcomeSkippedName:
		return "skipped_empty_name"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RowResult is the outcome of one staging row, with the error for failures.
type RowResult struct {
	Outcome Outcome
	Err     error
}

// Engine reconciles staging rows into relationship rows. It resolves the
// owning title, resolves or creates the person and role identity, and
// inserts the relationship unless it already exists. All writes for one
// row happen in one transaction so a failure rolls back that row alone.
type Engine struct {
	db      *gorm.DB
	cache   *identity.Cache
	adapter RoleAdapter
	logger  *zap.Logger
}

// NewEngine creates an engine for one role, sharing the run's cache.
func NewEngine(db *gorm.DB, cache *identity.Cache, adapter RoleAdapter, logger *zap.Logger) *Engine {
	return &Engine{db: db, cache: cache, adapter: adapter, logger: logger}
}

// Reconcile processes a single staging row. Resolution order is fixed:
// title first (a miss skips the row; titles are never created here), then
// person, then role membership, then the relationship.
func (e *Engine) Reconcile(row models.StagingCredit) RowResult {
	titleID, ok := e.cache.ResolveTitle(row.ShowID)
	if !ok {
		e.logger.Warn("title not found for staging row",
			zap.String("show_id", row.ShowID),
			zap.String("name", row.Name))
		return RowResult{Outcome: OutcomeSkippedTitle}
	}

	rawName := strings.TrimSpace(row.Name)
	if identity.Normalize(rawName) == "" {
		return RowResult{Outcome: OutcomeSkippedName}
	}

	var (
		outcome       Outcome
		personID      uint
		createdPerson bool
	)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var resolved bool
		personID, resolved = e.cache.ResolvePerson(rawName)

		if !resolved {
			person := models.Person{Name: rawName}
			if err := tx.Create(&person).Error; err != nil {
				return err
			}
			personID = person.PersonID
			createdPerson = true
		}

		// Covers both the fresh person and a partially-migrated one that
		// exists in people but is missing its role marker.
		if err := e.adapter.EnsureRole(tx, personID); err != nil {
			return err
		}

		exists, err := e.adapter.RelationExists(tx, personID, titleID)
		if err != nil {
			return err
		}
		if exists {
			outcome = OutcomeDuplicate
			return nil
		}

		if err := e.adapter.CreateRelation(tx, personID, titleID); err != nil {
			return err
		}
		outcome = OutcomeCreated
		return nil
	})
	if err != nil {
		e.logger.Warn("failed to reconcile staging row; will retry next run",
			zap.Uint("staging_id", row.ID),
			zap.String("show_id", row.ShowID),
			zap.String("name", rawName),
			zap.Error(err))
		return RowResult{Outcome: OutcomeFailed, Err: err}
	}

	// Register identities only after the transaction committed, so a
	// rolled-back person id can never leak into the cache.
	if createdPerson {
		e.cache.RegisterPerson(rawName, personID)
		e.logger.Debug("created person for credit",
			zap.Uint("person_id", personID),
			zap.String("name", rawName),
			zap.String("role", e.adapter.Name()))
	}
	e.cache.RegisterRole(personID)

	return RowResult{Outcome: outcome}
}
