package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

func seedReservation(t *testing.T, store *memStore, slot string) model.TableReservation {
	t.Helper()
	res := model.TableReservation{
		Date: "2025-06-01", Time: slot, PartySize: 2,
		CustomerName: "Jane Doe", CustomerEmail: "jane@x.com",
		CustomerPhone: "(555) 987-6543", Status: model.StatusConfirmed,
	}
	require.NoError(t, store.Create(context.Background(), &res))
	return res
}

func TestStaffListByDate(t *testing.T) {
	store := newMemStore()
	seedReservation(t, store, "19:00")
	seedReservation(t, store, "20:30")
	h := NewStaffReservationHandler(store)

	rec := doJSON(t, http.MethodGet, "/v1/staff/reservations?date=2025-06-01", "", h.ListByDate)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["items"], 2)

	rec = doJSON(t, http.MethodGet, "/v1/staff/reservations?date=bogus", "", h.ListByDate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaffUpdatePartialFields(t *testing.T) {
	store := newMemStore()
	res := seedReservation(t, store, "19:00")
	h := NewStaffReservationHandler(store)

	rec := doJSON(t, http.MethodPatch, "/v1/staff/reservations/1",
		`{"partySize":4,"specialRequests":"Birthday"}`, h.Update, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := store.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.PartySize)
	assert.Equal(t, "Birthday", got.SpecialRequests)
	// Untouched fields keep their values.
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, "19:00", got.Time)
}

func TestStaffCancellationReleasesSlot(t *testing.T) {
	store := newMemStore()
	for i := 0; i < 3; i++ {
		seedReservation(t, store, "19:00")
	}
	h := NewStaffReservationHandler(store)
	booking := newBookingHandler(store)

	rec := doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), booking.Create)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, http.MethodPatch, "/v1/staff/reservations/1",
		`{"status":"cancelled"}`, h.Update, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), booking.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStaffUpdateValidation(t *testing.T) {
	store := newMemStore()
	seedReservation(t, store, "19:00")
	h := NewStaffReservationHandler(store)

	cases := []struct {
		name string
		body string
	}{
		{"bad slot", `{"time":"16:45"}`},
		{"bad party size", `{"partySize":12}`},
		{"bad status", `{"status":"pending"}`},
		{"bad email", `{"customerEmail":"nope"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, http.MethodPatch, "/v1/staff/reservations/1", tc.body, h.Update, "id", "1")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := doJSON(t, http.MethodPatch, "/v1/staff/reservations/42", `{"partySize":4}`, h.Update, "id", "42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaffDelete(t *testing.T) {
	store := newMemStore()
	seedReservation(t, store, "19:00")
	h := NewStaffReservationHandler(store)

	rec := doJSON(t, http.MethodDelete, "/v1/staff/reservations/1", "", h.Delete, "id", "1")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, http.MethodDelete, "/v1/staff/reservations/1", "", h.Delete, "id", "1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
