package catalog

// Config holds configuration for the credit pipeline.
type Config struct {
	// Enabled controls whether the catalog feature is loaded by the server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BatchSize is the number of staging rows processed per batch.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// Source selects where the denormalized export is read from when
	// rebuilding staging: "table" (pre-loaded source table) or "object"
	// (CSV in the storage bucket).
	Source string `mapstructure:"source" default:"table"`
	// SourceTable is the wide export table holding one row per title.
	SourceTable string `mapstructure:"source_table" default:"temp_netflix_titles"`
	// SourceObject is the CSV object name used when Source is "object".
	SourceObject string `mapstructure:"source_object" default:"netflix_titles.csv"`
}

// Source kinds accepted by Config.Source.
const (
	SourceTableKind  = "table"
	SourceObjectKind = "object"
)
