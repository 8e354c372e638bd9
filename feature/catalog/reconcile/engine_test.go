package reconcile

import (
	"fmt"
	"testing"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/identity"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCatalogDB creates an in-memory SQLite DB with the full catalog
// schema plus the actors staging table.
func setupCatalogDB(t *testing.T, dbName string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Person{},
		&models.Actor{},
		&models.Director{},
		&models.Title{},
		&models.ActorTitle{},
		&models.DirectorTitle{},
		&models.ProcessingRun{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Table("temp_actors_titles").AutoMigrate(&models.StagingCredit{}); err != nil {
		t.Fatalf("failed to create staging table: %v", err)
	}
	return db
}

func newActorsEngine(t *testing.T, db *gorm.DB) (*Engine, *identity.Cache) {
	cache := identity.NewCache(db, "actors", "actor_id")
	require.NoError(t, cache.Preload())
	return NewEngine(db, cache, ActorsAdapter{}, zap.NewNop()), cache
}

func TestReconcileCreatesUnknownActor(t *testing.T) {
	db := setupCatalogDB(t, "engine_create")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)

	engine, _ := newActorsEngine(t, db)

	result := engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: "Alice Smith"})
	assert.Equal(t, OutcomeCreated, result.Outcome)

	var person models.Person
	require.NoError(t, db.Where("name = ?", "Alice Smith").Take(&person).Error)
	assert.False(t, person.IsSynthetic)

	var actor models.Actor
	require.NoError(t, db.Where("actor_id = ?", person.PersonID).Take(&actor).Error)

	var relations []models.ActorTitle
	require.NoError(t, db.Find(&relations).Error)
	require.Len(t, relations, 1)
	assert.Equal(t, person.PersonID, relations[0].ActorID)
	assert.Equal(t, uint(1), relations[0].TitleID)
}

func TestReconcileDuplicateCastToken(t *testing.T) {
	// spec example: "Alice, Bob, Alice" yields two people and two
	// relationship rows; the repeated Alice is a duplicate.
	db := setupCatalogDB(t, "engine_duplicate")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)

	engine, _ := newActorsEngine(t, db)

	outcomes := []Outcome{}
	for _, name := range []string{"Alice", "Bob", "Alice"} {
		outcomes = append(outcomes, engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: name}).Outcome)
	}
	assert.Equal(t, []Outcome{OutcomeCreated, OutcomeCreated, OutcomeDuplicate}, outcomes)

	var people, relations int64
	require.NoError(t, db.Model(&models.Person{}).Count(&people).Error)
	require.NoError(t, db.Model(&models.ActorTitle{}).Count(&relations).Error)
	assert.EqualValues(t, 2, people)
	assert.EqualValues(t, 2, relations)
}

func TestReconcileSkipsMissingTitle(t *testing.T) {
	db := setupCatalogDB(t, "engine_missing_title")

	engine, _ := newActorsEngine(t, db)

	result := engine.Reconcile(models.StagingCredit{ShowID: "nope", Name: "Alice"})
	assert.Equal(t, OutcomeSkippedTitle, result.Outcome)

	// Skipped rows create nothing, not even the person.
	var people int64
	require.NoError(t, db.Model(&models.Person{}).Count(&people).Error)
	assert.EqualValues(t, 0, people)
}

func TestReconcileSkipsEmptyName(t *testing.T) {
	db := setupCatalogDB(t, "engine_empty_name")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)

	engine, _ := newActorsEngine(t, db)

	result := engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: "   "})
	assert.Equal(t, OutcomeSkippedName, result.Outcome)
}

func TestReconcileRepairsPersonWithoutRole(t *testing.T) {
	// A person can pre-exist from another pipeline (e.g. directors)
	// without an actors row; reconciling adds the marker instead of
	// creating a second person.
	db := setupCatalogDB(t, "engine_repair")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)
	require.NoError(t, db.Create(&models.Person{Name: "Carol Cross"}).Error)

	engine, _ := newActorsEngine(t, db)

	result := engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: "Carol Cross"})
	assert.Equal(t, OutcomeCreated, result.Outcome)

	var people int64
	require.NoError(t, db.Model(&models.Person{}).Count(&people).Error)
	assert.EqualValues(t, 1, people)

	var actor models.Actor
	require.NoError(t, db.Where("actor_id = ?", 1).Take(&actor).Error)
}

func TestReconcileExistingRelationIsDuplicate(t *testing.T) {
	db := setupCatalogDB(t, "engine_existing")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)
	require.NoError(t, db.Create(&models.Person{Name: "Alice"}).Error)
	require.NoError(t, db.Create(&models.Actor{ActorID: 1}).Error)
	require.NoError(t, db.Create(&models.ActorTitle{ActorID: 1, TitleID: 1}).Error)

	engine, _ := newActorsEngine(t, db)

	result := engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: "alice"})
	assert.Equal(t, OutcomeDuplicate, result.Outcome)

	var relations int64
	require.NoError(t, db.Model(&models.ActorTitle{}).Count(&relations).Error)
	assert.EqualValues(t, 1, relations)
}

func TestReconcileFailureRollsBackRow(t *testing.T) {
	db := setupCatalogDB(t, "engine_rollback")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)

	// Dropping the relationship table makes the final insert fail; the
	// person and actor created earlier in the row's transaction must
	// roll back with it.
	require.NoError(t, db.Migrator().DropTable(&models.ActorTitle{}))

	engine, cache := newActorsEngine(t, db)

	result := engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: "Alice"})
	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Error(t, result.Err)

	var people int64
	require.NoError(t, db.Model(&models.Person{}).Count(&people).Error)
	assert.EqualValues(t, 0, people)

	// The rolled-back person id must not have leaked into the cache.
	_, ok := cache.ResolvePerson("Alice")
	assert.False(t, ok)
}

func TestDirectorsAdapter(t *testing.T) {
	db := setupCatalogDB(t, "engine_directors")
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)

	cache := identity.NewCache(db, "directors", "director_id")
	require.NoError(t, cache.Preload())
	engine := NewEngine(db, cache, DirectorsAdapter{}, zap.NewNop())

	result := engine.Reconcile(models.StagingCredit{ShowID: "s1", Name: "Dora Lane"})
	assert.Equal(t, OutcomeCreated, result.Outcome)

	var director models.Director
	require.NoError(t, db.Where("director_id = ?", 1).Take(&director).Error)

	var relations []models.DirectorTitle
	require.NoError(t, db.Find(&relations).Error)
	require.Len(t, relations, 1)
}

func TestAdapterFor(t *testing.T) {
	actors, err := AdapterFor("actors")
	require.NoError(t, err)
	assert.Equal(t, "temp_actors_titles", actors.StagingTable())
	assert.Equal(t, "actors_titles", actors.RelationTable())
	assert.Equal(t, "cast", actors.CreditColumn())

	directors, err := AdapterFor("directors")
	require.NoError(t, err)
	assert.Equal(t, "directors_titles", directors.RelationTable())
	assert.Equal(t, "director", directors.CreditColumn())

	_, err = AdapterFor("writers")
	assert.Error(t, err)
}
