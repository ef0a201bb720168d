package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB is the shared sqlx handle used by the read-model queries and the
// health check. The write path goes through GORM (postgres.go); keeping a
// raw handle alongside it avoids dragging the ORM into plain aggregates.
var DB *sqlx.DB

// InitSqlx connects the shared sqlx handle, retrying while the database
// comes up.
func InitSqlx(dsn string) error {
	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
