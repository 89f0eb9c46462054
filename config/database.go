package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/model"
)

var DB *gorm.DB

// ConnectDB opens the MySQL connection and migrates the schema.
// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
func ConnectDB() {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "fieldtrack"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	if err := Migrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	DB = db
}

// Migrate creates/updates the tables for all models. Shared with the tests,
// which run it against an in-memory SQLite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Division{},
		&model.EmployeeProfile{},
		&model.DeviceToken{},
		&model.Office{},
		&model.LocationLog{},
		&model.Attendance{},
		&model.GeofenceEvent{},
		&model.Message{},
	)
}
