package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// TableReport is the verification result for a single table.
type TableReport struct {
	Table          string       `json:"table"`
	Exists         bool         `json:"exists"`
	MissingColumns []string     `json:"missing_columns,omitempty"`
	Columns        []ColumnInfo `json:"columns,omitempty"`
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == "sqlite" {
		// SQLite exposes schema via PRAGMA table_info
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifyTables checks that every expected table exists and carries the
// expected columns. Expected maps table name to required column names;
// extra columns are ignored.
func VerifyTables(db *gorm.DB, expected map[string][]string) ([]TableReport, error) {
	reports := make([]TableReport, 0, len(expected))

	for table, required := range expected {
		report := TableReport{Table: table}

		if !db.Migrator().HasTable(table) {
			reports = append(reports, report)
			continue
		}
		report.Exists = true

		columns, err := GetTableColumns(db, table)
		if err != nil {
			return nil, err
		}
		report.Columns = columns

		present := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			present[col.Field] = struct{}{}
		}
		for _, name := range required {
			if _, ok := present[strings.ToLower(name)]; !ok {
				report.MissingColumns = append(report.MissingColumns, name)
			}
		}
		reports = append(reports, report)
	}

	return reports, nil
}
