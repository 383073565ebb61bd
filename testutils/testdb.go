package testutils

import (
	"github.com/123AnkitSharma/Taskify/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database with migrations applied,
// for service-level tests that exercise real queries.
func SetupTestDB() (*database.Database, func()) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if err := database.RunMigrations(db); err != nil {
		panic(err)
	}

	testDB := &database.Database{DB: db}

	close := func() {
		testDB.Close()
	}

	return testDB, close
}
