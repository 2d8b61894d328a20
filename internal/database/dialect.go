package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Dialect covers the SQL that differs between the supported engines.
// Queries are written with ? placeholders and rebound by sqlx.
type Dialect interface {
	Name() string

	// InsertIgnore turns a plain INSERT into one that skips rows violating the conflict key.
	InsertIgnore(insert string, conflict ...string) string

	// UpsertIncrement turns a plain INSERT into one that adds counters to an existing row.
	UpsertIncrement(table, insert string, conflict []string, counters []string, touched ...string) string

	// ForUpdate is the row lock suffix for SELECTs inside a transaction, or "".
	ForUpdate() string

	SupportsLastInsertID() bool

	MigrationsSubdir() string
	CreateMigrationsTableQuery() string
}

// DialectOf returns the dialect of the connection or transaction.
func DialectOf(q interface{ DriverName() string }) Dialect {
	return DialectFor(q.DriverName())
}

func DialectFor(driver string) Dialect {
	switch driver {
	case DriverPostgres:
		return postgresDialect{}
	case DriverSQLite:
		return sqliteDialect{}
	default:
		return mysqlDialect{}
	}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return DriverMySQL }

func (mysqlDialect) InsertIgnore(insert string, _ ...string) string {
	return strings.Replace(insert, "INSERT INTO", "INSERT IGNORE INTO", 1)
}

func (mysqlDialect) UpsertIncrement(_ string, insert string, _ []string, counters []string, touched ...string) string {
	sets := make([]string, 0, len(counters)+len(touched))
	for _, c := range counters {
		sets = append(sets, fmt.Sprintf("%s = %s + VALUES(%s)", c, c, c))
	}
	for _, c := range touched {
		sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
	}
	return insert + " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

func (mysqlDialect) ForUpdate() string { return " FOR UPDATE" }

func (mysqlDialect) SupportsLastInsertID() bool { return true }

func (mysqlDialect) MigrationsSubdir() string { return "mysql" }

func (mysqlDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS schema_migrations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		filename VARCHAR(255) NOT NULL UNIQUE,
		executed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
}

// conflictDialect is shared by the engines that speak ON CONFLICT.
type conflictDialect struct{}

func (conflictDialect) InsertIgnore(insert string, conflict ...string) string {
	return fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING", insert, strings.Join(conflict, ", "))
}

func (conflictDialect) UpsertIncrement(table, insert string, conflict []string, counters []string, touched ...string) string {
	sets := make([]string, 0, len(counters)+len(touched))
	for _, c := range counters {
		sets = append(sets, fmt.Sprintf("%s = %s.%s + excluded.%s", c, table, c, c))
	}
	for _, c := range touched {
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", insert, strings.Join(conflict, ", "), strings.Join(sets, ", "))
}

type postgresDialect struct{ conflictDialect }

func (postgresDialect) Name() string { return DriverPostgres }

func (postgresDialect) ForUpdate() string { return " FOR UPDATE" }

func (postgresDialect) SupportsLastInsertID() bool { return false }

func (postgresDialect) MigrationsSubdir() string { return "postgres" }

func (postgresDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS schema_migrations (
		id SERIAL PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
}

type sqliteDialect struct{ conflictDialect }

func (sqliteDialect) Name() string { return DriverSQLite }

// SQLite locks the whole database on write; transactions begin IMMEDIATE instead.
func (sqliteDialect) ForUpdate() string { return "" }

func (sqliteDialect) SupportsLastInsertID() bool { return true }

func (sqliteDialect) MigrationsSubdir() string { return "sqlite" }

func (sqliteDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS schema_migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL UNIQUE,
		executed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
}

// InsertReturningID executes an INSERT written with ? placeholders and returns the new row id.
func InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	if DialectOf(q).SupportsLastInsertID() {
		result, err := q.ExecContext(ctx, q.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("result.LastInsertId() > %w", err)
		}
		return id, nil
	}

	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
