// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/decaesar/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for analysis history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			length INTEGER NOT NULL,
			letters INTEGER NOT NULL,
			shift INTEGER NOT NULL,
			chi_squared REAL NOT NULL,
			perfect INTEGER NOT NULL,
			preview TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAnalysis stores a completed decryption.
func (s *Store) InsertAnalysis(ctx context.Context, rec model.AnalysisRecord) (int64, error) {
	perfect := 0
	if rec.Perfect {
		perfect = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (created_at, source, length, letters, shift, chi_squared, perfect, preview)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC().Format(timeLayout),
		rec.Source,
		rec.Length,
		rec.Letters,
		rec.Shift,
		rec.ChiSquared,
		perfect,
		rec.Preview,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAnalyses returns stored analyses, oldest first, filtered by f.
func (s *Store) ListAnalyses(ctx context.Context, f model.HistoryFilter) ([]model.AnalysisRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if f.Source != "" {
		clauses = append(clauses, "source LIKE ? ESCAPE '\\'")
		args = append(args, escapeLike(f.Source)+"%")
	}
	if f.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, f.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, created_at, source, length, letters, shift, chi_squared, perfect, preview
		FROM analyses
		WHERE %s
		ORDER BY created_at DESC, id DESC`, strings.Join(clauses, " AND "))
	if f.Last > 0 {
		query += " LIMIT ?"
		args = append(args, f.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		var createdAt string
		var perfect int
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Source, &rec.Length, &rec.Letters, &rec.Shift, &rec.ChiSquared, &perfect, &rec.Preview); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Perfect = perfect != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse into chronological order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// ShiftCounts returns how many stored analyses resolved to each shift.
func (s *Store) ShiftCounts(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT shift, COUNT(*) FROM analyses GROUP BY shift`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	counts := map[int]int{}
	for rows.Next() {
		var shift, count int
		if err := rows.Scan(&shift, &count); err != nil {
			return nil, err
		}
		counts[shift] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Clear deletes all stored analyses and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
