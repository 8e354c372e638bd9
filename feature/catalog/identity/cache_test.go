package identity

import (
	"fmt"
	"testing"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite DB with the identity tables.
func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Person{}, &models.Actor{}, &models.Title{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Alice Smith":        "alice smith",
		"  Alice   Smith  ":  "alice smith",
		"ALICE SMITH":        "alice smith",
		"":                   "",
		"   ":                "",
		"\tBob\n":            "bob",
		"Jean-Claude\tVan D": "jean-claude van d",
	}
	for input, want := range cases {
		assert.Equal(t, want, Normalize(input), "input %q", input)
	}
}

func TestCachePreloadAndResolve(t *testing.T) {
	db := setupTestDB(t, "identity_preload")

	require.NoError(t, db.Create(&models.Person{Name: "Alice Smith"}).Error)
	require.NoError(t, db.Create(&models.Person{Name: "Bob Jones"}).Error)
	require.NoError(t, db.Create(&models.Actor{ActorID: 1}).Error)
	require.NoError(t, db.Create(&models.Title{Code: "s1"}).Error)

	cache := NewCache(db, "actors", "actor_id")
	require.NoError(t, cache.Preload())

	people, roles, titles := cache.Sizes()
	assert.Equal(t, 2, people)
	assert.Equal(t, 1, roles)
	assert.Equal(t, 1, titles)

	t.Run("Person Hit Ignores Case And Whitespace", func(t *testing.T) {
		id, ok := cache.ResolvePerson("  ALICE   smith ")
		assert.True(t, ok)
		assert.Equal(t, uint(1), id)
	})

	t.Run("Role Membership", func(t *testing.T) {
		assert.True(t, cache.HasRole(1))
		assert.False(t, cache.HasRole(2))
	})

	t.Run("Title Hit", func(t *testing.T) {
		id, ok := cache.ResolveTitle("s1")
		assert.True(t, ok)
		assert.Equal(t, uint(1), id)
	})

	t.Run("Title Miss", func(t *testing.T) {
		_, ok := cache.ResolveTitle("nope")
		assert.False(t, ok)
	})

	t.Run("Empty Name Never Resolves", func(t *testing.T) {
		_, ok := cache.ResolvePerson("   ")
		assert.False(t, ok)
	})
}

func TestCacheStorageFallthrough(t *testing.T) {
	db := setupTestDB(t, "identity_fallthrough")

	cache := NewCache(db, "actors", "actor_id")
	require.NoError(t, cache.Preload())

	// Inserted after preload, so only reachable via the storage lookup.
	require.NoError(t, db.Create(&models.Person{Name: "Carol Late"}).Error)
	require.NoError(t, db.Create(&models.Title{Code: "s9"}).Error)

	id, ok := cache.ResolvePerson("carol late")
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)

	titleID, ok := cache.ResolveTitle("s9")
	assert.True(t, ok)
	assert.Equal(t, uint(1), titleID)

	// Second resolve must come from the cache; deleting the row proves it.
	require.NoError(t, db.Delete(&models.Person{}, id).Error)
	id2, ok := cache.ResolvePerson("Carol Late")
	assert.True(t, ok)
	assert.Equal(t, id, id2)
}

func TestCacheNegativeResultRemembered(t *testing.T) {
	db := setupTestDB(t, "identity_negative")

	cache := NewCache(db, "actors", "actor_id")
	require.NoError(t, cache.Preload())

	_, ok := cache.ResolvePerson("Nobody Here")
	assert.False(t, ok)

	// A row created behind the cache's back stays invisible until
	// registered; the single-writer model makes this safe.
	require.NoError(t, db.Create(&models.Person{Name: "Nobody Here"}).Error)
	_, ok = cache.ResolvePerson("Nobody Here")
	assert.False(t, ok)

	cache.RegisterPerson("Nobody Here", 1)
	id, ok := cache.ResolvePerson("nobody   here")
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)
}

func TestCacheRegisterRole(t *testing.T) {
	db := setupTestDB(t, "identity_register_role")

	cache := NewCache(db, "actors", "actor_id")
	require.NoError(t, cache.Preload())

	assert.False(t, cache.HasRole(7))
	cache.RegisterRole(7)
	assert.True(t, cache.HasRole(7))
}
