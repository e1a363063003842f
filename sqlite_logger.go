package pops

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/ksuid"
)

// SQLiteStepLogger is a StepLogger that writes every run's step,
// spread-rate, and quarantine output into the SQLite database at the
// base path, one table per kind, named after the run's id so concurrent
// runs against the same base path never collide.
type SQLiteStepLogger struct {
	path  string
	runID ksuid.KSUID

	db *sql.DB

	stepTable       string
	spreadRateTable string
	quarantineTable string
}

// NewSQLiteStepLogger creates a logger backed by a single SQLite
// database file at basepath, scoped to runID.
func NewSQLiteStepLogger(basepath string, runID ksuid.KSUID) *SQLiteStepLogger {
	l := new(SQLiteStepLogger)
	l.SetBasePath(basepath, runID)
	return l
}

func (l *SQLiteStepLogger) SetBasePath(basepath string, runID ksuid.KSUID) {
	l.path = strings.TrimSuffix(basepath, ".") + ".db"
	l.runID = runID
	safeID := strings.ReplaceAll(runID.String(), "-", "_")
	l.stepTable = "Step_" + safeID
	l.spreadRateTable = "SpreadRate_" + safeID
	l.quarantineTable = "Quarantine_" + safeID
}

// Init opens the database (WAL mode, exclusive locking) and creates
// this run's three tables.
func (l *SQLiteStepLogger) Init() error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal=WAL&_locking=EXCLUSIVE&_sync=NORMAL", l.path))
	if err != nil {
		return err
	}
	l.db = db

	stmts := []string{
		fmt.Sprintf(`create table %s (id integer not null primary key, step int, date text, susceptible int, exposed int, infected int, resistant int, died int, total_hosts int)`, l.stepTable),
		fmt.Sprintf(`create table %s (id integer not null primary key, step int, north real, south real, east real, west real)`, l.spreadRateTable),
		fmt.Sprintf(`create table %s (id integer not null primary key, step int, escape int, distance real, direction text)`, l.quarantineTable),
	}
	for _, stmt := range stmts {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// WriteStep inserts one compartment snapshot row.
func (l *SQLiteStepLogger) WriteStep(rec StepRecord) error {
	stmt := fmt.Sprintf("insert into %s(step, date, susceptible, exposed, infected, resistant, died, total_hosts) values(?,?,?,?,?,?,?,?)", l.stepTable)
	_, err := l.db.Exec(stmt, rec.Step, rec.Date.String(), rec.Susceptible, rec.Exposed, rec.Infected, rec.Resistant, rec.Died, rec.TotalHosts)
	return err
}

// WriteSpreadRate inserts one spread-rate row.
func (l *SQLiteStepLogger) WriteSpreadRate(step int, rate SpreadRateStep) error {
	stmt := fmt.Sprintf("insert into %s(step, north, south, east, west) values(?,?,?,?,?)", l.spreadRateTable)
	_, err := l.db.Exec(stmt, step, rate.North, rate.South, rate.East, rate.West)
	return err
}

// WriteQuarantine inserts one quarantine-escape row.
func (l *SQLiteStepLogger) WriteQuarantine(step int, esc QuarantineEscapeStep) error {
	stmt := fmt.Sprintf("insert into %s(step, escape, distance, direction) values(?,?,?,?)", l.quarantineTable)
	_, err := l.db.Exec(stmt, step, esc.Escape, esc.Distance, directionName(esc.Direction))
	return err
}

// Close closes the underlying database handle.
func (l *SQLiteStepLogger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}
