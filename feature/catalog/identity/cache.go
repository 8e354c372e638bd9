package identity

import (
	"fmt"
	"strings"

	"github.com/anu-001/netflix-marketing-analytics/feature/catalog/models"

	"gorm.io/gorm"
)

// Normalize returns the canonical lookup key for a credit name: leading and
// trailing whitespace trimmed, inner runs of whitespace folded to single
// spaces, lower-cased. The same function is applied to cache keys and
// storage lookups so two spellings collide exactly when their normalized
// forms do. An all-whitespace name normalizes to "".
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Cache resolves credit names to person ids and title codes to title ids.
// It is built fresh for each run, bulk-preloaded to avoid per-row round
// trips, and extended as the run creates new people. The pipeline is the
// single writer, so no locking is needed.
type Cache struct {
	db         *gorm.DB
	roleTable  string
	roleColumn string

	people map[string]uint     // normalized name -> person_id
	roles  map[uint]struct{}   // person ids present in the role table
	titles map[string]uint     // title code -> title_id
	misses map[string]struct{} // normalized names known absent from storage
}

// NewCache creates an empty cache bound to one role namespace
// (e.g. table "actors", column "actor_id").
func NewCache(db *gorm.DB, roleTable, roleColumn string) *Cache {
	return &Cache{
		db:         db,
		roleTable:  roleTable,
		roleColumn: roleColumn,
		people:     make(map[string]uint),
		roles:      make(map[uint]struct{}),
		titles:     make(map[string]uint),
		misses:     make(map[string]struct{}),
	}
}

// Preload bulk-loads all people, role memberships, and titles.
func (c *Cache) Preload() error {
	var people []models.Person
	if err := c.db.Find(&people).Error; err != nil {
		return fmt.Errorf("failed to preload people: %w", err)
	}
	for _, p := range people {
		key := Normalize(p.Name)
		if key == "" {
			continue
		}
		c.people[key] = p.PersonID
	}

	var roleIDs []uint
	if err := c.db.Table(c.roleTable).Pluck(c.roleColumn, &roleIDs).Error; err != nil {
		return fmt.Errorf("failed to preload %s: %w", c.roleTable, err)
	}
	for _, id := range roleIDs {
		c.roles[id] = struct{}{}
	}

	var titles []models.Title
	if err := c.db.Find(&titles).Error; err != nil {
		return fmt.Errorf("failed to preload titles: %w", err)
	}
	for _, t := range titles {
		c.titles[t.Code] = t.TitleID
	}

	return nil
}

// ResolveTitle returns the title id for a natural key, falling through to a
// storage lookup on a cache miss. Titles are never created here.
func (c *Cache) ResolveTitle(code string) (uint, bool) {
	if id, ok := c.titles[code]; ok {
		return id, true
	}

	var title models.Title
	err := c.db.Where("code = ?", code).Take(&title).Error
	if err != nil {
		return 0, false
	}
	c.titles[code] = title.TitleID
	return title.TitleID, true
}

// ResolvePerson returns the person id for a credit name. The name is
// normalized before lookup; a miss falls through to storage and populates
// the cache. Negative results are remembered so repeated unknown names in
// one run cost a single query.
func (c *Cache) ResolvePerson(name string) (uint, bool) {
	key := Normalize(name)
	if key == "" {
		return 0, false
	}
	if id, ok := c.people[key]; ok {
		return id, true
	}
	if _, missed := c.misses[key]; missed {
		return 0, false
	}

	var person models.Person
	err := c.db.Where("LOWER(TRIM(name)) = ?", key).Take(&person).Error
	if err != nil {
		c.misses[key] = struct{}{}
		return 0, false
	}
	c.people[key] = person.PersonID
	return person.PersonID, true
}

// HasRole reports whether the person is already known to the role table.
// Advisory only: the engine re-checks inside its transaction before
// inserting a role row.
func (c *Cache) HasRole(personID uint) bool {
	_, ok := c.roles[personID]
	return ok
}

// RegisterPerson records a newly created person so later rows in the same
// run resolve it without a storage hit.
func (c *Cache) RegisterPerson(name string, id uint) {
	key := Normalize(name)
	if key == "" {
		return
	}
	c.people[key] = id
	delete(c.misses, key)
}

// RegisterRole records a newly created role row.
func (c *Cache) RegisterRole(personID uint) {
	c.roles[personID] = struct{}{}
}

// Sizes returns the number of cached people, roles, and titles, for logs.
func (c *Cache) Sizes() (people, roles, titles int) {
	return len(c.people), len(c.roles), len(c.titles)
}
