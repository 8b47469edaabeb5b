package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrValidation = errors.New("store: validation failed")
	ErrConflict   = errors.New("store: already exists")
	ErrNotFound   = errors.New("store: not found")
)

// ValidationError carries the message shown to the user. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// Store runs the users and tasks statements against a pooled connection.
// Each call checks a connection out of the pool and returns it when done.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// q rewrites ? placeholders for the connection's driver
func (s *Store) q(query string) string {
	return s.db.Rebind(query)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
