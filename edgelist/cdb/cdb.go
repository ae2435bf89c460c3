// Package cdb provides an edgelist.Source that streams edges from a
// CockroachDB (or any Postgres-compatible) database.
package cdb

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/linksrus/rankflow/edgelist"
	"golang.org/x/xerrors"
)

// DefaultQuery selects the edges of the default edge table.
var DefaultQuery = TableQuery("edges", "src", "dst", "weight")

// Compile-time check for ensuring rowSource implements edgelist.Source.
var _ edgelist.Source = (*rowSource)(nil)

// TableQuery returns a query that selects the source, destination and weight
// columns of table. An empty weightCol produces unweighted records.
func TableQuery(table, srcCol, dstCol, weightCol string) string {
	cols := pq.QuoteIdentifier(srcCol) + ", " + pq.QuoteIdentifier(dstCol)
	if weightCol != "" {
		cols += ", " + pq.QuoteIdentifier(weightCol)
	}
	return fmt.Sprintf("SELECT %s FROM %s", cols, pq.QuoteIdentifier(table))
}

// Open connects to the database specified by dsn and returns a Source for
// the rows produced by query. Closing the source also closes the database
// connection.
func Open(dsn, query string) (edgelist.Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, xerrors.Errorf("cdb edge source: %w", err)
	}

	src, err := newRowSource(db, query)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	src.ownsDB = true
	return src, nil
}

// NewSource executes query on db and returns a Source for the resulting rows.
// The query must return two (src, dst) or three (src, dst, weight) columns;
// NULL weights produce unweighted records.
func NewSource(db *sql.DB, query string) (edgelist.Source, error) {
	return newRowSource(db, query)
}

func newRowSource(db *sql.DB, query string) (*rowSource, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, xerrors.Errorf("cdb edge source: %w", err)
	}

	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, xerrors.Errorf("cdb edge source: %w", err)
	}
	if len(cols) != 2 && len(cols) != 3 {
		_ = rows.Close()
		return nil, xerrors.Errorf("cdb edge source: query returns %d columns: %w", len(cols), edgelist.ErrMalformedRecord)
	}

	return &rowSource{db: db, rows: rows, weighted: len(cols) == 3}, nil
}

// rowSource is an edgelist.Source implementation for SQL result sets.
type rowSource struct {
	db       *sql.DB
	ownsDB   bool
	rows     *sql.Rows
	weighted bool

	lastErr    error
	latchedRec *edgelist.Record
}

// Next implements edgelist.Source.
func (s *rowSource) Next() bool {
	if s.lastErr != nil || !s.rows.Next() {
		return false
	}

	var (
		rec    = new(edgelist.Record)
		weight sql.NullFloat64
	)
	if s.weighted {
		s.lastErr = s.rows.Scan(&rec.Src, &rec.Dst, &weight)
	} else {
		s.lastErr = s.rows.Scan(&rec.Src, &rec.Dst)
	}
	if s.lastErr != nil {
		s.lastErr = xerrors.Errorf("cdb edge source: %w", s.lastErr)
		return false
	}
	rec.Weight, rec.HasWeight = weight.Float64, weight.Valid

	s.latchedRec = rec
	return true
}

// Record implements edgelist.Source.
func (s *rowSource) Record() *edgelist.Record {
	return s.latchedRec
}

// Error implements edgelist.Source.
func (s *rowSource) Error() error {
	if s.lastErr != nil {
		return s.lastErr
	}
	if err := s.rows.Err(); err != nil {
		return xerrors.Errorf("cdb edge source: %w", err)
	}
	return nil
}

// Close implements edgelist.Source.
func (s *rowSource) Close() error {
	err := s.rows.Close()
	if s.ownsDB {
		if dbErr := s.db.Close(); err == nil {
			err = dbErr
		}
	}
	if err != nil {
		return xerrors.Errorf("cdb edge source: %w", err)
	}
	return nil
}
