package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"

	"searchd/pkg/types"
)

// Store persists predictions and their eventually-recorded true outcomes.
type Store struct {
	db     *sql.DB
	driver string
}

// Open selects the backend from the target: a postgres:// (or postgresql://)
// URL connects to Postgres, anything else is treated as a local SQLite file
// path. The schema is created on open if missing.
func Open(target string) (*Store, error) {
	driver := "sqlite"
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		driver = "pgx"
	}
	db, err := sql.Open(driver, target)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if driver == "sqlite" {
		// modernc sqlite handles one writer; serialize through a single conn.
		db.SetMaxOpenConns(1)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Driver returns the backing driver name: sqlite or pgx.
func (s *Store) Driver() string { return s.driver }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS predictions (
  observation_id TEXT PRIMARY KEY,
  observation TEXT NOT NULL,
  prediction INTEGER NOT NULL,
  proba REAL NOT NULL,
  true_class INTEGER,
  created_at TIMESTAMP NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// q rewrites ? placeholders to $n for the Postgres driver. Queries in this
// package are written against the SQLite dialect.
func (s *Store) q(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Insert stores a freshly scored prediction. A second insert with the same
// observation_id returns ErrDuplicate.
func (s *Store) Insert(ctx context.Context, rec types.PredictionRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, s.q(`
INSERT INTO predictions(observation_id, observation, prediction, proba, created_at)
VALUES(?, ?, ?, ?, ?);
`), rec.ObservationID, string(rec.Observation), boolToInt(rec.Prediction), rec.Proba, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate(rec.ObservationID)
		}
		return s.opError(ctx, "insert prediction", err)
	}
	return nil
}

// SetTrueClass records the real outcome for a stored prediction and returns
// the updated record. A missing observation_id returns ErrNotFound.
func (s *Store) SetTrueClass(ctx context.Context, id string, outcome bool) (types.PredictionRecord, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
UPDATE predictions SET true_class = ? WHERE observation_id = ?;
`), boolToInt(outcome), id)
	if err != nil {
		return types.PredictionRecord{}, s.opError(ctx, "update true_class", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.PredictionRecord{}, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return types.PredictionRecord{}, ErrNotFound(id)
	}
	return s.Get(ctx, id)
}

// Get returns a single stored prediction by observation id.
func (s *Store) Get(ctx context.Context, id string) (types.PredictionRecord, error) {
	row := s.db.QueryRowContext(ctx, s.q(`
SELECT observation_id, observation, prediction, proba, true_class, created_at
FROM predictions WHERE observation_id = ?;
`), id)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return types.PredictionRecord{}, ErrNotFound(id)
	}
	if err != nil {
		return types.PredictionRecord{}, s.opError(ctx, "get prediction", err)
	}
	return rec, nil
}

// List returns up to limit stored predictions, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]types.PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
SELECT observation_id, observation, prediction, proba, true_class, created_at
FROM predictions ORDER BY created_at DESC, observation_id LIMIT ?;
`), limit)
	if err != nil {
		return nil, s.opError(ctx, "list predictions", err)
	}
	defer rows.Close()

	var out []types.PredictionRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Counts returns total stored predictions and how many have a recorded
// true outcome.
func (s *Store) Counts(ctx context.Context) (predictions, outcomes int64, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(true_class) FROM predictions;`)
	if err := row.Scan(&predictions, &outcomes); err != nil {
		return 0, 0, s.opError(ctx, "count predictions", err)
	}
	return predictions, outcomes, nil
}

// opError classifies a failed statement. Connection-level failures become
// ErrUnavailable so the HTTP layer can answer 503 instead of 500; the ping
// runs only on the error path.
func (s *Store) opError(ctx context.Context, op string, err error) error {
	if ctx.Err() == nil && (errors.Is(err, sql.ErrConnDone) || s.db.PingContext(ctx) != nil) {
		return ErrUnavailable(op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func scanRecord(scan func(...any) error) (types.PredictionRecord, error) {
	var (
		rec       types.PredictionRecord
		obs       string
		pred      int
		trueClass sql.NullInt64
	)
	if err := scan(&rec.ObservationID, &obs, &pred, &rec.Proba, &trueClass, &rec.CreatedAt); err != nil {
		return types.PredictionRecord{}, err
	}
	rec.Observation = []byte(obs)
	rec.Prediction = pred != 0
	if trueClass.Valid {
		v := trueClass.Int64 != 0
		rec.TrueClass = &v
	}
	return rec, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	// modernc sqlite reports constraint failures as plain text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
