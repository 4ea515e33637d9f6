package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/vaibhaw-/HealthR/internal/healthr/logger"
	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

// State tracks what a Store has done so far. There is no way back to
// Uninitialized; resetting means deleting the store itself.
type State int

const (
	Uninitialized State = iota
	SchemaReady
	Loaded
)

func (s State) String() string {
	switch s {
	case SchemaReady:
		return "schema_ready"
	case Loaded:
		return "loaded"
	default:
		return "uninitialized"
	}
}

// insertBatchSize keeps multi-row inserts under SQLite's bound variable
// limit (12 patient columns * 50 rows).
const insertBatchSize = 50

// Store persists hospital and patient tables. A Store is not safe for
// concurrent Load calls; the engine's own file locking is all there is.
type Store struct {
	db      *sql.DB
	dialect Dialect
	qb      squirrel.StatementBuilderType
	state   State
	log     *zap.SugaredLogger
}

// New wraps an open handle.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.placeholder()),
		log:     logger.L(),
	}
}

// Open connects to the store described by o and checks it is reachable.
func Open(ctx context.Context, o Options) (*Store, error) {
	dialect, err := ParseDialect(o.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.driverName(), buildDSN(dialect, o))
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageErr("ping", err)
	}
	s := New(db, dialect)
	s.log.Debugw("store opened", "driver", dialect, "path", o.Path, "host", o.Host)
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) State() State { return s.state }

func (s *Store) Dialect() Dialect { return s.dialect }

// InitSchema creates both tables if they are absent. It is idempotent and
// never touches existing rows.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storageErr("create schema", err)
		}
	}
	if s.state == Uninitialized {
		s.state = SchemaReady
	}
	s.log.Debugw("schema ready", "driver", s.dialect)
	return nil
}

// Load replaces the contents of both tables in one transaction. Existing
// rows are discarded; on any failure the transaction is rolled back and the
// previous contents stay in place.
func (s *Store) Load(ctx context.Context, hospitals synth.HospitalTable, patients synth.PatientTable) error {
	if s.state == Uninitialized {
		if err := s.InitSchema(ctx); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	if err := s.replace(ctx, tx, hospitals, patients); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Errorw("rollback failed", "err", rbErr.Error())
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}

	s.state = Loaded
	s.log.Infow("data loaded", "hospitals", len(hospitals), "patients", len(patients), "driver", s.dialect)
	return nil
}

func (s *Store) replace(ctx context.Context, tx *sql.Tx, hospitals synth.HospitalTable, patients synth.PatientTable) error {
	// patients first: they reference hospitals
	for _, table := range []string{PatientsTable, HospitalsTable} {
		query, args, err := s.qb.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("build delete %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return storageErr("clear "+table, err)
		}
	}

	hrows := make([][]any, len(hospitals))
	for i, h := range hospitals {
		hrows[i] = h.Record()
	}
	if err := s.insertRows(ctx, tx, HospitalsTable, synth.HospitalColumns, hrows); err != nil {
		return err
	}

	prows := make([][]any, len(patients))
	for i, p := range patients {
		prows[i] = p.Record()
	}
	return s.insertRows(ctx, tx, PatientsTable, synth.PatientColumns, prows)
}

func (s *Store) insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		q := s.qb.Insert(table).Columns(columns...)
		for _, r := range rows[start:end] {
			q = q.Values(r...)
		}
		query, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return storageErr("insert "+table, err)
		}
	}
	s.log.Debugw("rows inserted", "table", table, "count", len(rows))
	return nil
}
