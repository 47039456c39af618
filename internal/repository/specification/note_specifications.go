package specification

import "gorm.io/gorm"

// InsertionOrder sorts notes oldest-first, with id as the tie breaker so the
// order stays stable when two notes share a creation timestamp.
type InsertionOrder struct{}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
