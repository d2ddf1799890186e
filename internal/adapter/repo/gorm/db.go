package gormrepo

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects and brings the journal schema up to date. The
// journal is the only table this process owns, so AutoMigrate stands in
// for a migration history.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&memoryRecordRow{}); err != nil {
		return nil, fmt.Errorf("migrate journal schema: %w", err)
	}
	return db, nil
}
