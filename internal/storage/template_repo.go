package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pokebinder/pokebinder/internal/binder"
)

// TemplateRepository reads the binder template catalog seeded by migrations.
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// List returns every template, default first, then by name.
func (r *TemplateRepository) List() ([]binder.Template, error) {
	query := `
		SELECT id, name, rows, cols, max_page, is_default
		FROM binder_templates
		ORDER BY is_default DESC, name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	templates := []binder.Template{}
	for rows.Next() {
		var tmpl binder.Template
		if err := rows.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Rows, &tmpl.Cols, &tmpl.MaxPage, &tmpl.Default); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template rows: %w", err)
	}

	return templates, nil
}

// Get looks up a template by id.
func (r *TemplateRepository) Get(id string) (binder.Template, error) {
	query := `
		SELECT id, name, rows, cols, max_page, is_default
		FROM binder_templates
		WHERE id = ?
	`

	var tmpl binder.Template
	err := r.db.QueryRow(query, id).Scan(&tmpl.ID, &tmpl.Name, &tmpl.Rows, &tmpl.Cols, &tmpl.MaxPage, &tmpl.Default)
	if errors.Is(err, sql.ErrNoRows) {
		return binder.Template{}, &binder.TemplateNotFoundError{ID: id}
	}
	if err != nil {
		return binder.Template{}, fmt.Errorf("failed to load template %s: %w", id, err)
	}

	return tmpl, nil
}
