package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

// MenuRepo reads the published menu. Dietary tags are stored as a
// comma-separated list in a single column; the repo splits and joins
// them so callers only see string slices.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

const menuCols = `id, name, description, price, category, dietary_tags, image_url, featured`

func scanMenuItem(row interface{ Scan(...interface{}) error }, m *model.MenuItem) error {
	var tags, image sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &tags, &image, &m.Featured); err != nil {
		return err
	}
	m.ImageURL = image.String
	m.DietaryTags = splitTags(tags.String)
	return nil
}

func splitTags(csv string) []string {
	if csv == "" {
		return []string{}
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *MenuRepo) queryItems(ctx context.Context, q string, args ...interface{}) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MenuItem{}
	for rows.Next() {
		var m model.MenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListAll returns every menu item ordered by category then name.
func (r *MenuRepo) ListAll(ctx context.Context) ([]model.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuCols+` FROM menu_items ORDER BY category, name`)
}

// ListByCategory returns the items in one category.
func (r *MenuRepo) ListByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	return r.queryItems(ctx,
		`SELECT `+menuCols+` FROM menu_items WHERE category = ? ORDER BY name`, category)
}

// Search matches the query case-insensitively against item name,
// description and category.
func (r *MenuRepo) Search(ctx context.Context, query string) ([]model.MenuItem, error) {
	like := "%" + strings.ToLower(query) + "%"
	return r.queryItems(ctx,
		`SELECT `+menuCols+` FROM menu_items
		 WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?
		 ORDER BY category, name`, like, like, like)
}

// ListByDietaryTags returns items carrying at least one of the given
// tags. An empty tag list returns the full menu.
func (r *MenuRepo) ListByDietaryTags(ctx context.Context, tags []string) ([]model.MenuItem, error) {
	if len(tags) == 0 {
		return r.ListAll(ctx)
	}
	conds := make([]string, 0, len(tags))
	args := make([]interface{}, 0, len(tags))
	for _, t := range tags {
		conds = append(conds, `FIND_IN_SET(?, dietary_tags) > 0`)
		args = append(args, strings.TrimSpace(t))
	}
	q := `SELECT ` + menuCols + ` FROM menu_items WHERE ` + strings.Join(conds, " OR ") +
		` ORDER BY category, name`
	return r.queryItems(ctx, q, args...)
}

// GetByID fetches one menu item. Returns ErrNotFound when no row exists.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (model.MenuItem, error) {
	const q = `SELECT ` + menuCols + ` FROM menu_items WHERE id = ?`
	var m model.MenuItem
	if err := scanMenuItem(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, ErrNotFound
		}
		return m, err
	}
	return m, nil
}
