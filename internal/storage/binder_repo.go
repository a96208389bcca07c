package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pokebinder/pokebinder/internal/binder"
)

// sqliteTimeFormat is ISO 8601 without timezone suffix, stored as UTC.
const sqliteTimeFormat = "2006-01-02 15:04:05.999999"

// BinderNotFoundError indicates no binder exists with the requested id.
type BinderNotFoundError struct {
	ID string
}

func (e *BinderNotFoundError) Error() string {
	return fmt.Sprintf("binder %q not found", e.ID)
}

// BinderRepository handles database operations for binder layouts.
type BinderRepository struct {
	db *sql.DB
}

// NewBinderRepository creates a new binder repository.
func NewBinderRepository(db *sql.DB) *BinderRepository {
	return &BinderRepository{db: db}
}

// Save inserts or updates a binder layout. Positions are stored as a JSON
// document; the layout is the unit of persistence.
func (r *BinderRepository) Save(layout binder.Layout) error {
	positions, err := json.Marshal(layout.Positions)
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}

	query := `
		INSERT INTO binders (
			id, name, description, rows, cols, template_id, max_page,
			positions, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			rows = excluded.rows,
			cols = excluded.cols,
			template_id = excluded.template_id,
			max_page = excluded.max_page,
			positions = excluded.positions,
			updated_at = excluded.updated_at
	`

	_, err = r.db.Exec(query,
		layout.ID, layout.Name, layout.Description,
		layout.Rows, layout.Cols, layout.TemplateID, layout.MaxPage,
		string(positions),
		layout.CreatedAt.UTC().Format(sqliteTimeFormat),
		layout.UpdatedAt.UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to save binder: %w", err)
	}

	return nil
}

// Get loads a binder layout by id.
func (r *BinderRepository) Get(id string) (binder.Layout, error) {
	query := `
		SELECT id, name, description, rows, cols, template_id, max_page,
		       positions, created_at, updated_at
		FROM binders
		WHERE id = ?
	`

	layout, err := scanBinder(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return binder.Layout{}, &BinderNotFoundError{ID: id}
	}
	if err != nil {
		return binder.Layout{}, fmt.Errorf("failed to load binder %s: %w", id, err)
	}

	return layout, nil
}

// List returns all saved binders, most recently updated first.
func (r *BinderRepository) List() ([]binder.Layout, error) {
	query := `
		SELECT id, name, description, rows, cols, template_id, max_page,
		       positions, created_at, updated_at
		FROM binders
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list binders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	layouts := []binder.Layout{}
	for rows.Next() {
		layout, err := scanBinder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan binder row: %w", err)
		}
		layouts = append(layouts, layout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate binder rows: %w", err)
	}

	return layouts, nil
}

// Delete removes a binder by id.
func (r *BinderRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM binders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete binder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &BinderNotFoundError{ID: id}
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanBinder.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBinder(row scanner) (binder.Layout, error) {
	var layout binder.Layout
	var positions, createdAt, updatedAt string

	err := row.Scan(
		&layout.ID, &layout.Name, &layout.Description,
		&layout.Rows, &layout.Cols, &layout.TemplateID, &layout.MaxPage,
		&positions, &createdAt, &updatedAt,
	)
	if err != nil {
		return binder.Layout{}, err
	}

	if err := json.Unmarshal([]byte(positions), &layout.Positions); err != nil {
		return binder.Layout{}, fmt.Errorf("failed to unmarshal positions: %w", err)
	}

	if layout.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return binder.Layout{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if layout.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return binder.Layout{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return layout, nil
}

func parseSQLiteTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(sqliteTimeFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
