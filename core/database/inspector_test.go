package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type inspectorPerson struct {
	PersonID    uint   `gorm:"column:person_id;primaryKey"`
	Name        string `gorm:"column:name"`
	IsSynthetic bool   `gorm:"column:is_synthetic"`
}

func (inspectorPerson) TableName() string { return "people" }

func setupInspectorDB(t *testing.T, dbName string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&inspectorPerson{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGetTableColumns(t *testing.T) {
	db := setupInspectorDB(t, "inspector_columns")

	columns, err := GetTableColumns(db, "people")
	require.NoError(t, err)

	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Field)
	}
	assert.ElementsMatch(t, []string{"person_id", "name", "is_synthetic"}, names)
}

func TestVerifyTables(t *testing.T) {
	db := setupInspectorDB(t, "inspector_verify")

	reports, err := VerifyTables(db, map[string][]string{
		"people": {"person_id", "name", "is_synthetic", "birth_year"},
		"titles": {"title_id"},
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byTable := map[string]TableReport{}
	for _, report := range reports {
		byTable[report.Table] = report
	}

	people := byTable["people"]
	assert.True(t, people.Exists)
	assert.Equal(t, []string{"birth_year"}, people.MissingColumns)

	titles := byTable["titles"]
	assert.False(t, titles.Exists)
	assert.Empty(t, titles.Columns)
}

func TestVerifyTablesAllPresent(t *testing.T) {
	db := setupInspectorDB(t, "inspector_ok")

	reports, err := VerifyTables(db, map[string][]string{
		"people": {"person_id", "name"},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Exists)
	assert.Empty(t, reports[0].MissingColumns)
}
