package reconcile

import (
	"fmt"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"gorm.io/gorm"
)

// RoleAdapter binds the engine to one credit role's tables. The engine and
// coordinator are role-agnostic; everything actor- or director-specific
// lives behind this interface.
type RoleAdapter interface {
	// Name returns the role name, which is also the role table name
	// ("actors", "directors").
	Name() string
	// RoleColumn returns the role table's id column ("actor_id").
	RoleColumn() string
	// StagingTable returns the staging table for this role.
	StagingTable() string
	// RelationTable returns the relationship table, also used as the run
	// ledger's target table name.
	RelationTable() string
	// CreditColumn returns the export column carrying this role's credits.
	CreditColumn() string
	// EnsureRole inserts the role marker row for a person if absent.
	// Called inside the row transaction, after the person row exists.
	EnsureRole(tx *gorm.DB, personID uint) error
	// RelationExists checks for an existing (person, title) relationship.
	RelationExists(tx *gorm.DB, personID, titleID uint) (bool, error)
	// CreateRelation inserts the (person, title) relationship row.
	CreateRelation(tx *gorm.DB, personID, titleID uint) error
}

// AdapterFor returns the adapter for a role name.
func AdapterFor(role string) (RoleAdapter, error) {
	switch role {
	case "actors":
		return ActorsAdapter{}, nil
	case "directors":
		return DirectorsAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown credit role %q (want actors or directors)", role)
	}
}

// ActorsAdapter maps the engine onto actors / actors_titles.
type ActorsAdapter struct{}

func (ActorsAdapter) Name() string          { return "actors" }
func (ActorsAdapter) RoleColumn() string    { return "actor_id" }
func (ActorsAdapter) StagingTable() string  { return "temp_actors_titles" }
func (ActorsAdapter) RelationTable() string { return "actors_titles" }
func (ActorsAdapter) CreditColumn() string  { return "cast" }

func (ActorsAdapter) EnsureRole(tx *gorm.DB, personID uint) error {
	var count int64
	if err := tx.Model(&models.Actor{}).Where("actor_id = ?", personID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&models.Actor{ActorID: personID}).Error
}

func (ActorsAdapter) RelationExists(tx *gorm.DB, personID, titleID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.ActorTitle{}).
		Where("actor_id = ? AND title_id = ?", personID, titleID).
		Count(&count).Error
	return count > 0, err
}

func (ActorsAdapter) CreateRelation(tx *gorm.DB, personID, titleID uint) error {
	return tx.Create(&models.ActorTitle{ActorID: personID, TitleID: titleID}).Error
}

// DirectorsAdapter maps the engine onto directors / directors_titles.
type DirectorsAdapter struct{}

func (DirectorsAdapter) Name() string          { return "directors" }
func (DirectorsAdapter) RoleColumn() string    { return "director_id" }
func (DirectorsAdapter) StagingTable() string  { return "temp_directors_titles" }
func (DirectorsAdapter) RelationTable() string { return "directors_titles" }
func (DirectorsAdapter) CreditColumn() string  { return "director" }

func (DirectorsAdapter) EnsureRole(tx *gorm.DB, personID uint) error {
	var count int64
	if err := tx.Model(&models.Director{}).Where("director_id = ?", personID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&models.Director{DirectorID: personID}).Error
}

func (DirectorsAdapter) RelationExists(tx *gorm.DB, personID, titleID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.DirectorTitle{}).
		Where("director_id = ? AND title_id = ?", personID, titleID).
		Count(&count).Error
	return count > 0, err
}

func (DirectorsAdapter) CreateRelation(tx *gorm.DB, personID, titleID uint) error {
	return tx.Create(&models.DirectorTitle{DirectorID: personID, TitleID: titleID}).Error
}
