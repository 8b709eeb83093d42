package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for table reservations plus
// the filtered count used by the availability checker. Dates and times
// are stored as DATE and CHAR(5) columns; timestamp fields are UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, DATE_FORMAT(res_date, '%Y-%m-%d'), res_time, party_size,
	customer_name, customer_email, customer_phone, special_requests, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }, r *model.TableReservation) error {
	var special sql.NullString
	err := row.Scan(&r.ID, &r.Date, &r.Time, &r.PartySize,
		&r.CustomerName, &r.CustomerEmail, &r.CustomerPhone, &special,
		&r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return err
	}
	r.SpecialRequests = special.String
	return nil
}

// Create inserts a new reservation and populates the generated ID and
// timestamps on the provided record. Status must be set by the caller.
func (r *ReservationRepo) Create(ctx context.Context, res *model.TableReservation) error {
	const q = `INSERT INTO reservations
		(res_date, res_time, party_size, customer_name, customer_email, customer_phone, special_requests, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var special interface{}
	if res.SpecialRequests != "" {
		special = res.SpecialRequests
	}
	result, err := r.db.ExecContext(ctx, q,
		res.Date, res.Time, res.PartySize,
		res.CustomerName, res.CustomerEmail, res.CustomerPhone, special, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row so timestamps reflect the database defaults.
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// GetByID fetches one reservation by identity. Returns ErrNotFound when
// no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.TableReservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	var res model.TableReservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, ErrNotFound
		}
		return res, err
	}
	return res, nil
}

// Update rewrites the mutable fields of an existing reservation.
// Returns ErrNotFound when the identity does not exist.
func (r *ReservationRepo) Update(ctx context.Context, res *model.TableReservation) error {
	const q = `UPDATE reservations
		SET res_date = ?, res_time = ?, party_size = ?, customer_name = ?,
		    customer_email = ?, customer_phone = ?, special_requests = ?, status = ?
		WHERE id = ?`
	var special interface{}
	if res.SpecialRequests != "" {
		special = res.SpecialRequests
	}
	result, err := r.db.ExecContext(ctx, q,
		res.Date, res.Time, res.PartySize, res.CustomerName,
		res.CustomerEmail, res.CustomerPhone, special, res.Status, res.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// Distinguish "no such row" from "no change": re-read the row.
		if _, err := r.GetByID(ctx, res.ID); err != nil {
			return err
		}
	}
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// Delete removes a reservation by identity. Returns ErrNotFound when no
// row was deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByDate returns all reservations for one calendar date ordered by
// slot then creation time. Used by the staff day view.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.TableReservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations
		WHERE res_date = ? ORDER BY res_time, id`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TableReservation{}
	for rows.Next() {
		var res model.TableReservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// CountConfirmed counts confirmed reservations for a (date, slot) pair.
// This is the read behind the availability check; cancelled rows never
// count toward capacity.
func (r *ReservationRepo) CountConfirmed(ctx context.Context, date, slot string) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations
		WHERE res_date = ? AND res_time = ? AND status = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, date, slot, model.StatusConfirmed).Scan(&n)
	return n, err
}
