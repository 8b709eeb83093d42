package repository

import (
	"context"
	"database/sql"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

// PhotoRepo reads the gallery photos shown on the site.
type PhotoRepo struct {
	db *sql.DB
}

// NewPhotoRepo returns a PhotoRepo bound to the given database.
func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{db: db} }

func (r *PhotoRepo) queryPhotos(ctx context.Context, q string, args ...interface{}) ([]model.Photo, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Photo{}
	for rows.Next() {
		var p model.Photo
		var caption sql.NullString
		if err := rows.Scan(&p.ID, &p.URL, &caption, &p.Category); err != nil {
			return nil, err
		}
		p.Caption = caption.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAll returns every gallery photo.
func (r *PhotoRepo) ListAll(ctx context.Context) ([]model.Photo, error) {
	return r.queryPhotos(ctx, `SELECT id, url, caption, category FROM photos ORDER BY id`)
}

// ListByCategory returns photos in one category.
func (r *PhotoRepo) ListByCategory(ctx context.Context, category string) ([]model.Photo, error) {
	return r.queryPhotos(ctx,
		`SELECT id, url, caption, category FROM photos WHERE category = ? ORDER BY id`, category)
}
