package postgresadapter

import "gorm.io/gorm"

// independentSession opens a brand-new *gorm.DB session detached from any
// transaction the caller might already be inside. Audit and error writes go
// through this so a rollback in the main persistence transaction never
// erases the trail describing what happened, per spec.md §4.7's
// "independent transaction" requirement.
func independentSession(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}
