package pool

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a file-backed Store for setups without redis
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and
// prepares the schema
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("pool: opening sqlite db %s: %w", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS sequences (
		length INTEGER NOT NULL,
		seq    TEXT    NOT NULL,
		PRIMARY KEY (length, seq)
	);
	CREATE TABLE IF NOT EXISTS build_metadata (
		length   INTEGER PRIMARY KEY,
		count    INTEGER NOT NULL,
		run_id   TEXT    NOT NULL,
		built_at TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("pool: creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Members returns every sequence of the length
func (s *SQLiteStore) Members(ctx context.Context, length int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq FROM sequences WHERE length = ? ORDER BY seq", length)
	if err != nil {
		return nil, fmt.Errorf("pool: reading members for length %d: %w", length, err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var seq string
		if err := rows.Scan(&seq); err != nil {
			return nil, err
		}
		members = append(members, seq)
	}

	return members, rows.Err()
}

// AddMembers merges sequences into the length's set
func (s *SQLiteStore) AddMembers(ctx context.Context, length int, seqs []string) error {
	if len(seqs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO sequences (length, seq) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, seq := range seqs {
		if _, err := stmt.ExecContext(ctx, length, seq); err != nil {
			return fmt.Errorf("pool: inserting sequence for length %d: %w", length, err)
		}
	}

	return tx.Commit()
}

// Count returns the size of the length's set
func (s *SQLiteStore) Count(ctx context.Context, length int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sequences WHERE length = ?", length).Scan(&n)
	return n, err
}

// RandomSample returns up to n members in random order
func (s *SQLiteStore) RandomSample(ctx context.Context, length int, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq FROM sequences WHERE length = ? ORDER BY RANDOM() LIMIT ?", length, n)
	if err != nil {
		return nil, fmt.Errorf("pool: sampling length %d: %w", length, err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var seq string
		if err := rows.Scan(&seq); err != nil {
			return nil, err
		}
		members = append(members, seq)
	}

	return members, rows.Err()
}

// Lengths returns every populated length, ascending
func (s *SQLiteStore) Lengths(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT length FROM sequences ORDER BY length")
	if err != nil {
		return nil, fmt.Errorf("pool: listing lengths: %w", err)
	}
	defer rows.Close()

	var lengths []int
	for rows.Next() {
		var length int
		if err := rows.Scan(&length); err != nil {
			return nil, err
		}
		lengths = append(lengths, length)
	}

	return lengths, rows.Err()
}

// SetMetadata upserts build information for a length
func (s *SQLiteStore) SetMetadata(ctx context.Context, length int, meta Metadata) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO build_metadata (length, count, run_id, built_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (length) DO UPDATE SET
			count = excluded.count,
			run_id = excluded.run_id,
			built_at = excluded.built_at`,
		length, meta.Count, meta.RunID, meta.BuiltAt)
	if err != nil {
		return fmt.Errorf("pool: writing metadata for length %d: %w", length, err)
	}
	return nil
}

// Metadata returns the recorded build information
func (s *SQLiteStore) Metadata(ctx context.Context, length int) (Metadata, error) {
	meta := Metadata{Length: length}

	var builtAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT count, run_id, built_at FROM build_metadata WHERE length = ?",
		length).Scan(&meta.Count, &meta.RunID, &builtAt)
	if err == sql.ErrNoRows {
		return Metadata{}, nil
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("pool: reading metadata for length %d: %w", length, err)
	}
	meta.BuiltAt = builtAt

	return meta, nil
}
