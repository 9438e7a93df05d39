// Package database opens the shared PostgreSQL pool backing the claim and
// user repositories. Connect is fatal on failure: the API cannot serve
// anything without its database.
package database

import (
	"database/sql"
	"log"
	"time"

	"cmcs_backend/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Could not open PostgreSQL connection: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		log.Fatalf("Could not reach PostgreSQL: %v", err)
	}

	log.Println("Connected to PostgreSQL")
}

func Close() {
	if DB != nil {
		DB.Close()
		log.Println("PostgreSQL connection closed")
	}
}
