package staging

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/anu-001/netflix-marketing-analytics/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// SourceRow is one record of the denormalized catalog export: the natural
// title key plus a comma-separated credit string for one role.
type SourceRow struct {
	ShowID  string `gorm:"column:show_id"`
	Credits string `gorm:"column:credits"`
}

// SourceReader supplies the export rows a staging rebuild starts from.
type SourceReader interface {
	// Name identifies the source in logs and the run ledger.
	Name() string
	// Read returns every export row with a non-empty credit string.
	Read(ctx context.Context) ([]SourceRow, error)
}

// TableSource reads the export from a pre-loaded wide table
// (temp_netflix_titles), selecting the credit column for one role.
type TableSource struct {
	db           *gorm.DB
	table        string
	creditColumn string
}

// NewTableSource creates a source over the given table and credit column
// (e.g. "cast" for actors, "director" for directors).
func NewTableSource(db *gorm.DB, table, creditColumn string) *TableSource {
	return &TableSource{db: db, table: table, creditColumn: creditColumn}
}

func (s *TableSource) Name() string {
	return fmt.Sprintf("table:%s.%s", s.table, s.creditColumn)
}

func (s *TableSource) Read(ctx context.Context) ([]SourceRow, error) {
	var rows []SourceRow
	// The credit column is quoted: "cast" is a reserved word in MySQL.
	sel := fmt.Sprintf("show_id, `%s` AS credits", s.creditColumn)
	where := fmt.Sprintf("`%s` IS NOT NULL AND TRIM(`%s`) != ''", s.creditColumn, s.creditColumn)
	err := s.db.WithContext(ctx).Table(s.table).
		Select(sel).
		Where(where).
		Order("show_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read export rows from %s: %w", s.table, err)
	}
	return rows, nil
}

// ObjectSource reads the export from a CSV object in the storage bucket.
// The CSV must carry a header row naming the key and credit columns.
type ObjectSource struct {
	client       storage.Client
	bucket       string
	object       string
	keyColumn    string
	creditColumn string
}

// NewObjectSource creates a source over a CSV export object.
func NewObjectSource(client storage.Client, bucket, object, keyColumn, creditColumn string) *ObjectSource {
	return &ObjectSource{
		client:       client,
		bucket:       bucket,
		object:       object,
		keyColumn:    keyColumn,
		creditColumn: creditColumn,
	}
}

func (s *ObjectSource) Name() string {
	return fmt.Sprintf("object:%s/%s.%s", s.bucket, s.object, s.creditColumn)
}

func (s *ObjectSource) Read(ctx context.Context) ([]SourceRow, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, s.object, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("export object %s not found in bucket %s: %w", s.object, s.bucket, err)
	}

	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get export object %s: %w", s.object, err)
	}
	defer reader.Close()

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1 // export rows vary in trailing columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse export csv %s: %w", s.object, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export csv %s is empty", s.object)
	}

	keyIdx, creditIdx := -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case strings.ToLower(s.keyColumn):
			keyIdx = i
		case strings.ToLower(s.creditColumn):
			creditIdx = i
		}
	}
	if keyIdx < 0 || creditIdx < 0 {
		return nil, fmt.Errorf("export csv %s missing column %q or %q", s.object, s.keyColumn, s.creditColumn)
	}

	rows := make([]SourceRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if keyIdx >= len(record) || creditIdx >= len(record) {
			continue
		}
		credits := strings.TrimSpace(record[creditIdx])
		if credits == "" {
			continue
		}
		rows = append(rows, SourceRow{
			ShowID:  strings.TrimSpace(record[keyIdx]),
			Credits: credits,
		})
	}
	return rows, nil
}
