// Package migrations embute os arquivos SQL do goose no binário.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Run executa um comando do goose (up, down, status, ...) sobre as migrações embutidas.
func Run(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Run(command, db, ".", args...)
}

// Up aplica todas as migrações pendentes.
func Up(db *sql.DB) error {
	return Run(db, "up")
}
