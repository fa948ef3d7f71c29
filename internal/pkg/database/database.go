package database

import (
	"fmt"
	"log"
	"time"

	"travel-booking-service/config"

	"github.com/jmoiron/sqlx"
	"go.elastic.co/apm/module/apmsql"

	_ "go.elastic.co/apm/module/apmsql/pq"
)

// GetConnection opens the instrumented Postgres pool. Fails fast: the
// service cannot do anything useful without its store.
func GetConnection(cfg *config.DatabaseConfig) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := apmsql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	dbx := sqlx.NewDb(db, "postgres")
	dbx.SetMaxOpenConns(25)
	dbx.SetMaxIdleConns(5)
	dbx.SetConnMaxLifetime(30 * time.Minute)

	if err := dbx.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	return dbx
}
