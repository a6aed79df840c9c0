// Package sqlite provides SQLite implementations of repository interfaces.
// Snapshot inputs and results are stored as msgpack blobs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hapkiduki/asphalt-go/internal/domain/entity"
	"github.com/hapkiduki/asphalt-go/internal/domain/repository"
)

// timeLayout is fixed width so that created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Config contains SQLite connection settings.
type Config struct {
	// Path is the database file path. ":memory:" opens a private in-memory database.
	Path string

	// MaxOpenConns caps concurrent connections (0 leaves the driver default).
	MaxOpenConns int
}

// Open opens the database and creates the schema if it does not exist.
//
// Parameters:
//   - cfg: connection settings
//
// Returns:
//   - *sql.DB: ready-to-use database handle
//   - error: ErrConnectionFailed wrapping the driver error
func Open(cfg Config) (*sql.DB, error) {
	dsn := cfg.Path
	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: creating database directory: %v", repository.ErrConnectionFailed, err)
			}
		}
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}

	// Every connection to ":memory:" is a separate database.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS calculations (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			inputs BLOB NOT NULL,
			results BLOB NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_kind ON calculations(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: executing schema statement: %v", repository.ErrConnectionFailed, err)
		}
	}
	return nil
}

// CalculationRepository stores calculation snapshots in SQLite.
type CalculationRepository struct {
	db *sql.DB
}

var _ repository.CalculationRepository = (*CalculationRepository)(nil)

// NewCalculationRepository creates a repository on an opened database.
func NewCalculationRepository(db *sql.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

// Create implements repository.CalculationRepository.
func (r *CalculationRepository) Create(ctx context.Context, calc *entity.Calculation) error {
	if calc == nil || calc.ID == uuid.Nil {
		return repository.ErrInvalidInput
	}

	inputs, err := msgpack.Marshal(&calc.Inputs)
	if err != nil {
		return fmt.Errorf("encoding inputs: %w", err)
	}
	results, err := msgpack.Marshal(&calc.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO calculations (id, kind, inputs, results, created_at) VALUES (?, ?, ?, ?, ?)`,
		calc.ID.String(), string(calc.Kind), inputs, results, calc.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return repository.ErrDuplicateCalculation
		}
		return fmt.Errorf("inserting calculation: %w", err)
	}
	return nil
}

// GetByID implements repository.CalculationRepository.
func (r *CalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, kind, inputs, results, created_at FROM calculations WHERE id = ?`, id.String())

	calc, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrCalculationNotFound
	}
	if err != nil {
		return nil, err
	}
	return calc, nil
}

// Delete implements repository.CalculationRepository.
func (r *CalculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting calculation: %w", err)
	}
	if n == 0 {
		return repository.ErrCalculationNotFound
	}
	return nil
}

// FindAll implements repository.CalculationRepository.
func (r *CalculationRepository) FindAll(ctx context.Context, filter repository.CalculationFilter) ([]*entity.Calculation, error) {
	where, args := whereClause(filter)
	query := `SELECT id, kind, inputs, results, created_at FROM calculations` + where +
		` ORDER BY created_at DESC, rowid DESC`

	// SQLite requires a LIMIT before OFFSET; -1 means unbounded.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying calculations: %w", err)
	}
	defer rows.Close()

	calcs := make([]*entity.Calculation, 0)
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calculations: %w", err)
	}
	return calcs, nil
}

// Count implements repository.CalculationRepository.
func (r *CalculationRepository) Count(ctx context.Context, filter repository.CalculationFilter) (int64, error) {
	where, args := whereClause(filter)

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting calculations: %w", err)
	}
	return n, nil
}

// Ping implements repository.CalculationRepository.
func (r *CalculationRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}
	return nil
}

func whereClause(filter repository.CalculationFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Kind != nil {
		conds = append(conds, "kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (*entity.Calculation, error) {
	var (
		id, kind, createdAt string
		inputs, results     []byte
	)
	if err := s.Scan(&id, &kind, &inputs, &results, &createdAt); err != nil {
		return nil, err
	}

	calc := &entity.Calculation{Kind: entity.CalculationKind(kind)}

	var err error
	if calc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id %q: %v", repository.ErrCorruptRecord, id, err)
	}
	if calc.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("%w: created_at %q: %v", repository.ErrCorruptRecord, createdAt, err)
	}
	if err := msgpack.Unmarshal(inputs, &calc.Inputs); err != nil {
		return nil, fmt.Errorf("%w: inputs: %v", repository.ErrCorruptRecord, err)
	}
	if err := msgpack.Unmarshal(results, &calc.Results); err != nil {
		return nil, fmt.Errorf("%w: results: %v", repository.ErrCorruptRecord, err)
	}
	return calc, nil
}
