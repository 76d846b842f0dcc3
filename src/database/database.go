package database

import (
	"personhood-verifier/pkg/logger"
	"personhood-verifier/src/ledger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func ConnectToDatabase(connectionString string) *gorm.DB {
	dbLogger := logger.Default()
	dbLogger.Infof("Establishing connection to database: %s", connectionString)

	connection, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{})
	if err != nil {
		dbLogger.Fatal(err, "Cannot establish database connection")
	}

	dbLogger.Info("Running migrations for tables")
	err = connection.AutoMigrate(&ledger.NullifierRecord{})
	if err != nil {
		dbLogger.Fatal(err, "Migrating database failed")
	}

	db = connection
	return db
}

func GetDatabaseConnection() *gorm.DB {
	if db == nil {
		panic("Database not initialized: call ConnectToDatabase() first")
	}
	return db
}
