// Package iostore persists forecast runs in a local SQLite database.
// This is an impure I/O package that implements the contract defined
// in pkg/store.
package iostore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)

	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/store"
)

// Matrix kinds as stored in forecast_cells.
const (
	matrixPreschoolers = "preschoolers"
	matrixNeeded       = "needed"
	matrixGap          = "gap"
)

// timeLayout keeps a fixed-width fraction so that the TEXT column
// sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// schemaSQL creates the run store tables. All statements are
// idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	years INTEGER NOT NULL,
	capacity INTEGER NOT NULL,
	min_age_months INTEGER NOT NULL,
	max_age_months INTEGER NOT NULL,
	current_year INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS subzones (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS supply (
	run_id TEXT NOT NULL REFERENCES runs (id),
	subzone_id TEXT NOT NULL REFERENCES subzones (id),
	num_preschools INTEGER NOT NULL,
	PRIMARY KEY (run_id, subzone_id)
);

CREATE TABLE IF NOT EXISTS forecast_cells (
	run_id TEXT NOT NULL REFERENCES runs (id),
	matrix TEXT NOT NULL,
	year INTEGER NOT NULL,
	subzone_id TEXT NOT NULL REFERENCES subzones (id),
	value INTEGER NOT NULL,
	PRIMARY KEY (run_id, matrix, year, subzone_id)
);

CREATE INDEX IF NOT EXISTS forecast_cells_run_idx
	ON forecast_cells (run_id);
`

// sqliteStore implements the store.Store interface on a local SQLite
// database.
type sqliteStore struct {
	cfg *config.Config
	db  *sql.DB
}

// New creates a run store (without opening the database).
func New(cfg *config.Config) store.Store {
	return &sqliteStore{cfg: cfg}
}

// Init opens the database file and ensures the schema exists.
func (s *sqliteStore) Init(ctx context.Context) error {
	path := s.cfg.Store.File
	if path == "" {
		path = config.StoreFilePath(s.cfg.HomeDir)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return OpenError(path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return OpenError(path, err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return SchemaError(err)
	}

	s.db = db
	return nil
}

// Close releases the database handle.
func (s *sqliteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists a run with its supply and output matrices in one
// transaction. An empty record ID gets a fresh UUID; subzone IDs are
// derived from the name, so they stay stable across runs.
func (s *sqliteStore) Save(
	ctx context.Context,
	rec *store.RunRecord,
) (string, error) {
	if s.db == nil {
		return "", NotInitializedError()
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", SaveError(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, years, capacity,
		   min_age_months, max_age_months, current_year)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt.UTC().Format(timeLayout),
		rec.Params.Years, rec.Params.Capacity,
		rec.Params.MinAgeMonths, rec.Params.MaxAgeMonths,
		rec.Params.CurrentYear,
	)
	if err != nil {
		return "", SaveError(err)
	}

	subzoneIDs := make(map[string]string)
	ensureSubzone := func(name string) (string, error) {
		if szID, ok := subzoneIDs[name]; ok {
			return szID, nil
		}
		szID := gnuuid.New(name).String()
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO subzones (id, name) VALUES (?, ?)`,
			szID, name,
		)
		if err != nil {
			return "", err
		}
		subzoneIDs[name] = szID
		return szID, nil
	}

	for subzone, n := range rec.Supply {
		szID, err := ensureSubzone(subzone)
		if err != nil {
			return "", SaveError(err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO supply (run_id, subzone_id, num_preschools)
			 VALUES (?, ?, ?)`,
			id, szID, n,
		)
		if err != nil {
			return "", SaveError(err)
		}
	}

	cellStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO forecast_cells (run_id, matrix, year, subzone_id, value)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", SaveError(err)
	}
	defer cellStmt.Close()

	matrices := []struct {
		kind string
		m    forecast.Matrix
	}{
		{matrixPreschoolers, rec.Preschoolers},
		{matrixNeeded, rec.Needed},
		{matrixGap, rec.Gap},
	}
	for _, v := range matrices {
		for _, year := range v.m.Years() {
			for subzone, value := range v.m[year] {
				szID, err := ensureSubzone(subzone)
				if err != nil {
					return "", SaveError(err)
				}
				_, err = cellStmt.ExecContext(ctx, id, v.kind, year, szID, value)
				if err != nil {
					return "", SaveError(err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", SaveError(err)
	}

	slog.Info("Saved forecast run", "run", id)
	return id, nil
}

// List returns summaries of all saved runs, newest first.
func (s *sqliteStore) List(ctx context.Context) ([]store.RunSummary, error) {
	if s.db == nil {
		return nil, NotInitializedError()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.years, r.capacity,
		       r.min_age_months, r.max_age_months, r.current_year,
		       COUNT(DISTINCT c.subzone_id)
		FROM runs r
		LEFT JOIN forecast_cells c
		  ON c.run_id = r.id AND c.matrix = 'preschoolers'
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id
	`)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	var res []store.RunSummary
	for rows.Next() {
		var sum store.RunSummary
		var createdAt string
		err = rows.Scan(
			&sum.ID, &createdAt,
			&sum.Params.Years, &sum.Params.Capacity,
			&sum.Params.MinAgeMonths, &sum.Params.MaxAgeMonths,
			&sum.Params.CurrentYear,
			&sum.Subzones,
		)
		if err != nil {
			return nil, QueryError(err)
		}
		sum.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, QueryError(err)
		}
		res = append(res, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

// Get returns a saved run with its matrices rebuilt.
func (s *sqliteStore) Get(
	ctx context.Context,
	id string,
) (*store.RunRecord, error) {
	if s.db == nil {
		return nil, NotInitializedError()
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT created_at, years, capacity,
		       min_age_months, max_age_months, current_year
		FROM runs WHERE id = ?
	`, id)

	rec := &store.RunRecord{ID: id}
	var createdAt string
	err := row.Scan(
		&createdAt,
		&rec.Params.Years, &rec.Params.Capacity,
		&rec.Params.MinAgeMonths, &rec.Params.MaxAgeMonths,
		&rec.Params.CurrentYear,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError(id)
	}
	if err != nil {
		return nil, QueryError(err)
	}
	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, QueryError(err)
	}

	rec.Years = make([]int, rec.Params.Years)
	for i := range rec.Years {
		rec.Years[i] = rec.Params.CurrentYear + 1 + i
	}

	if err := s.loadSupply(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.loadCells(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *sqliteStore) loadSupply(
	ctx context.Context,
	rec *store.RunRecord,
) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT z.name, v.num_preschools
		FROM supply v
		JOIN subzones z ON z.id = v.subzone_id
		WHERE v.run_id = ?
	`, rec.ID)
	if err != nil {
		return QueryError(err)
	}
	defer rows.Close()

	rec.Supply = make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return QueryError(err)
		}
		rec.Supply[name] = n
	}
	return rows.Err()
}

func (s *sqliteStore) loadCells(
	ctx context.Context,
	rec *store.RunRecord,
) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.matrix, c.year, z.name, c.value
		FROM forecast_cells c
		JOIN subzones z ON z.id = c.subzone_id
		WHERE c.run_id = ?
	`, rec.ID)
	if err != nil {
		return QueryError(err)
	}
	defer rows.Close()

	rec.Preschoolers = make(forecast.Matrix)
	rec.Needed = make(forecast.Matrix)
	rec.Gap = make(forecast.Matrix)

	for rows.Next() {
		var kind, name string
		var year, value int
		if err := rows.Scan(&kind, &year, &name, &value); err != nil {
			return QueryError(err)
		}

		var m forecast.Matrix
		switch kind {
		case matrixPreschoolers:
			m = rec.Preschoolers
		case matrixNeeded:
			m = rec.Needed
		case matrixGap:
			m = rec.Gap
		default:
			continue
		}
		if m[year] == nil {
			m[year] = make(map[string]int)
		}
		m[year][name] = value
	}
	return rows.Err()
}
