package repository

import (
	"context"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

// ReservationStore is the full contract handlers need from the
// reservation persistence layer: lifecycle operations by identity plus
// the filtered reads used for availability counting and the staff day
// view. ReservationRepo implements it against MySQL; tests inject an
// in-memory fake.
type ReservationStore interface {
	Create(ctx context.Context, r *model.TableReservation) error
	GetByID(ctx context.Context, id uint64) (model.TableReservation, error)
	Update(ctx context.Context, r *model.TableReservation) error
	Delete(ctx context.Context, id uint64) error
	ListByDate(ctx context.Context, date string) ([]model.TableReservation, error)
	CountConfirmed(ctx context.Context, date, slot string) (int, error)
}
