package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

// ReviewRepo persists customer reviews and computes the rating summary
// shown in the site header.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `id, customer_name, rating, comment, DATE_FORMAT(review_date, '%Y-%m-%d'), verified, created_at`

func scanReview(row interface{ Scan(...interface{}) error }, rv *model.Review) error {
	return row.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.Date, &rv.Verified, &rv.CreatedAt)
}

func (r *ReviewRepo) queryReviews(ctx context.Context, q string, args ...interface{}) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ListNewestFirst returns all reviews ordered by review date descending.
func (r *ReviewRepo) ListNewestFirst(ctx context.Context) ([]model.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewCols+` FROM reviews ORDER BY review_date DESC, id DESC`)
}

// ListByRating returns all reviews ordered by rating. Ascending order is
// opt-in; the default mirrors the site's "best first" listing.
func (r *ReviewRepo) ListByRating(ctx context.Context, ascending bool) ([]model.Review, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	return r.queryReviews(ctx,
		`SELECT `+reviewCols+` FROM reviews ORDER BY rating `+order+`, id DESC`)
}

// GetByID fetches one review. Returns ErrNotFound when no row exists.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE id = ?`
	var rv model.Review
	if err := scanReview(r.db.QueryRowContext(ctx, q, id), &rv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rv, ErrNotFound
		}
		return rv, err
	}
	return rv, nil
}

// Create inserts a review and populates the generated ID. The caller
// sets the review date; verified always starts false.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (customer_name, rating, comment, review_date, verified)
		VALUES (?, ?, ?, ?, FALSE)`
	result, err := r.db.ExecContext(ctx, q, rv.CustomerName, rv.Rating, rv.Comment, rv.Date)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	rv.Verified = false
	const sel = `SELECT ` + reviewCols + ` FROM reviews WHERE id = ?`
	return scanReview(r.db.QueryRowContext(ctx, sel, rv.ID), rv)
}

// SetVerified flips the verified flag on a review. Returns ErrNotFound
// when the identity does not exist.
func (r *ReviewRepo) SetVerified(ctx context.Context, id uint64, verified bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET verified = ? WHERE id = ?`, verified, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a review by identity.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// Summary computes the mean rating rounded to one decimal plus a count
// per star value. An empty table yields a zero average and an all-zero
// distribution.
func (r *ReviewRepo) Summary(ctx context.Context) (model.ReviewSummary, error) {
	sum := model.ReviewSummary{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	rows, err := r.db.QueryContext(ctx,
		`SELECT rating, COUNT(*) FROM reviews GROUP BY rating`)
	if err != nil {
		return sum, err
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return sum, err
		}
		if rating >= 1 && rating <= 5 {
			sum.Distribution[rating] = count
			sum.Count += count
			total += rating * count
		}
	}
	if err := rows.Err(); err != nil {
		return sum, err
	}
	if sum.Count > 0 {
		sum.Average = math.Round(float64(total)/float64(sum.Count)*10) / 10
	}
	return sum, nil
}
