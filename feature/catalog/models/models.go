package models

import "time"

// Person is a row in the people table. People are shared by every credit
// role (actors, directors); the pipeline creates them but never deletes them.
type Person struct {
	// PersonID is the surrogate key shared with the role tables.
	PersonID uint `gorm:"column:person_id;primaryKey;autoIncrement" json:"person_id"`
	// Name is the credit name exactly as it appeared in the source export.
	Name string `gorm:"column:name;size:255;not null" json:"name"`
	// IsSynthetic marks auto-generated placeholder people. The credit
	// pipeline only ever creates real people, so it always writes false.
	IsSynthetic bool `gorm:"column:is_synthetic;not null;default:false" json:"is_synthetic"`
}

// TableName overrides the GORM default pluralization.
func (Person) TableName() string { return "people" }

// Actor marks a person as a member of the actor namespace.
// actors.actor_id references people.person_id one-to-one.
type Actor struct {
	ActorID uint `gorm:"column:actor_id;primaryKey" json:"actor_id"`
}

func (Actor) TableName() string { return "actors" }

// Director marks a person as a member of the director namespace.
type Director struct {
	DirectorID uint `gorm:"column:director_id;primaryKey" json:"director_id"`
}

func (Director) TableName() string { return "directors" }

// Title is a row in the titles table. Titles are loaded by the catalog
// import; the credit pipeline looks them up by code and never creates them.
type Title struct {
	TitleID uint `gorm:"column:title_id;primaryKey;autoIncrement" json:"title_id"`
	// Code is the natural key carried over from the export (show_id).
	Code string `gorm:"column:code;size:20;not null;uniqueIndex" json:"code"`
}

func (Title) TableName() string { return "titles" }

// ActorTitle links an actor to a title. The pair is the primary key, so at
// most one row can exist per (actor, title).
type ActorTitle struct {
	ActorID uint `gorm:"column:actor_id;primaryKey" json:"actor_id"`
	TitleID uint `gorm:"column:title_id;primaryKey" json:"title_id"`
}

func (ActorTitle) TableName() string { return "actors_titles" }

// DirectorTitle links a director to a title.
type DirectorTitle struct {
	DirectorID uint `gorm:"column:director_id;primaryKey" json:"director_id"`
	TitleID    uint `gorm:"column:title_id;primaryKey" json:"title_id"`
}

func (DirectorTitle) TableName() string { return "directors_titles" }

// StagingCredit is one extracted (title, credit name) pair in a staging
// table. The struct carries no TableName because the same shape backs both
// temp_actors_titles and temp_directors_titles; callers select the table via
// db.Table(...). Only the Processed flag is ever mutated after insert:
// false means the row is still eligible for processing (or retry).
type StagingCredit struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ShowID    string    `gorm:"column:show_id;size:20;not null" json:"show_id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Processed bool      `gorm:"column:processed;not null;default:false;index" json:"processed"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// ProcessingRun is a row in the processing_status ledger. One row per run,
// created when the run starts and finalized when it completes or fails.
type ProcessingRun struct {
	StatusID uint `gorm:"column:status_id;primaryKey;autoIncrement" json:"status_id"`
	// RunUID is a random identifier carried through log lines so a run can
	// be correlated across restarts of the process.
	RunUID           string     `gorm:"column:run_uid;size:36;not null" json:"run_uid"`
	TableName        string     `gorm:"column:table_name;size:64;not null;index" json:"table_name"`
	Description      string     `gorm:"column:description;size:255" json:"description"`
	Status           string     `gorm:"column:status;size:16;not null" json:"status"`
	RecordsProcessed int        `gorm:"column:records_processed;not null;default:0" json:"records_processed"`
	RecordsCreated   int        `gorm:"column:records_created;not null;default:0" json:"records_created"`
	RecordsSkipped   int        `gorm:"column:records_skipped;not null;default:0" json:"records_skipped"`
	RecordsFailed    int        `gorm:"column:records_failed;not null;default:0" json:"records_failed"`
	ErrorMessage     *string    `gorm:"column:error_message;size:1024" json:"error_message,omitempty"`
	StartTime        time.Time  `gorm:"column:start_time" json:"start_time"`
	EndTime          *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (ProcessingRun) TableName() string { return "processing_status" }
