package database

import (
	"fmt"
	"log"

	"fiber-inventory/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// OpenDatabaseConnection membuka koneksi sesuai DB_DRIVER di konfigurasi.
// Driver yang didukung: postgres, mysql, mssql.
func OpenDatabaseConnection(dbName string) (*gorm.DB, error) {
	var dsn string
	var db *gorm.DB
	var err error

	switch config.DBDriver {
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "mssql":
		dsn = "sqlserver://" + config.DBUser + ":" + config.DBPassword + "@" + config.DBHost + ":" + config.DBPort + "?database=" + dbName
		db, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	case "postgres":
		fallthrough
	default:
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		log.Printf("Error connecting to database %s: %v", dbName, err)
		return nil, err
	}

	fmt.Println("Connected to database:", dbName)
	return db, nil
}
