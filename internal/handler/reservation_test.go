package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorytable/restaurant-reservation/internal/availability"
	"github.com/savorytable/restaurant-reservation/internal/mail"
	"github.com/savorytable/restaurant-reservation/internal/model"
	"github.com/savorytable/restaurant-reservation/internal/notify"
	"github.com/savorytable/restaurant-reservation/internal/repository"
	"github.com/savorytable/restaurant-reservation/internal/secret"
)

// memStore is the in-memory ReservationStore used across handler tests.
type memStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.TableReservation
	err    error // when set, every method fails with it
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, rows: map[uint64]model.TableReservation{}}
}

func (m *memStore) Create(_ context.Context, r *model.TableReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	r.ID = m.nextID
	m.nextID++
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	m.rows[r.ID] = *r
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (model.TableReservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.TableReservation{}, m.err
	}
	r, ok := m.rows[id]
	if !ok {
		return model.TableReservation{}, repository.ErrNotFound
	}
	return r, nil
}

func (m *memStore) Update(_ context.Context, r *model.TableReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[r.ID]; !ok {
		return repository.ErrNotFound
	}
	r.UpdatedAt = time.Now().UTC()
	m.rows[r.ID] = *r
	return nil
}

func (m *memStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore) ListByDate(_ context.Context, date string) ([]model.TableReservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.TableReservation
	for _, r := range m.rows {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) CountConfirmed(_ context.Context, date, slot string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, r := range m.rows {
		if r.Date == date && r.Time == slot && r.Status == model.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

// nullSender swallows the confirmation email the create path fires off.
type nullSender struct{}

func (nullSender) Send(context.Context, mail.Message) (string, error) { return "email_test", nil }

func testDispatcher() *notify.Dispatcher {
	return &notify.Dispatcher{
		Secrets:   secret.Static{secret.ResendAPIKey: "re_test"},
		SenderFor: func(string) mail.Sender { return nullSender{} },
		Loc:       time.UTC,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

func newBookingHandler(store *memStore) *ReservationHandler {
	checker := availability.NewChecker(store)
	return NewReservationHandler(store, checker, testDispatcher())
}

// doJSON drives one handler call through echo and returns the recorder.
func doJSON(t *testing.T, method, target, body string, h echo.HandlerFunc, pathParams ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(pathParams); i += 2 {
		c.SetParamNames(pathParams[i])
		c.SetParamValues(pathParams[i+1])
	}
	require.NoError(t, h(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func validCreateBody() string {
	return `{"date":"2025-06-01","time":"19:00","partySize":2,` +
		`"customerName":"Jane Doe","customerEmail":"jane@x.com","customerPhone":"(555) 987-6543"}`
}

func TestGetTimeSlotsReturnsFixedSet(t *testing.T) {
	h := newBookingHandler(newMemStore())

	rec := doJSON(t, http.MethodGet, "/v1/timeslots", "", h.GetTimeSlots)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	slots, ok := body["timeSlots"].([]any)
	require.True(t, ok)
	assert.Len(t, slots, 11)
	assert.Equal(t, "17:00", slots[0])
	assert.Equal(t, "22:00", slots[10])
}

func TestGetAvailabilityRejectsBadDate(t *testing.T) {
	h := newBookingHandler(newMemStore())

	for _, date := range []string{"", "June 1", "2025-13-40"} {
		rec := doJSON(t, http.MethodGet, "/v1/availability?date="+url.QueryEscape(date), "", h.GetAvailability)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "date %q", date)
	}
}

func TestGetAvailabilityExcludesFullSlot(t *testing.T) {
	store := newMemStore()
	for i := 0; i < availability.SlotCapacity; i++ {
		require.NoError(t, store.Create(context.Background(), &model.TableReservation{
			Date: "2025-06-01", Time: "19:00", PartySize: 2, Status: model.StatusConfirmed,
		}))
	}
	h := newBookingHandler(store)

	rec := doJSON(t, http.MethodGet, "/v1/availability?date=2025-06-01", "", h.GetAvailability)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	slots := body["availableSlots"].([]any)
	assert.Len(t, slots, 10)
	assert.NotContains(t, slots, "19:00")
}

func TestCreateReservationSucceeds(t *testing.T) {
	store := newMemStore()
	h := newBookingHandler(store)

	rec := doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), h.Create)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	res := body["reservation"].(map[string]any)
	assert.Equal(t, float64(1), res["id"])
	assert.Equal(t, "confirmed", res["status"])
	assert.Equal(t, "Jane Doe", res["customerName"])

	got, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got.Date)
	assert.Equal(t, "19:00", got.Time)
}

func TestCreateReservationValidation(t *testing.T) {
	h := newBookingHandler(newMemStore())

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing everything", `{}`, "date"},
		{"bad slot", `{"date":"2025-06-01","time":"16:00","partySize":2,"customerName":"A","customerEmail":"a@b.com","customerPhone":"(555) 123-4567"}`, "time"},
		{"party too large", `{"date":"2025-06-01","time":"19:00","partySize":9,"customerName":"A","customerEmail":"a@b.com","customerPhone":"(555) 123-4567"}`, "partySize"},
		{"bad email", `{"date":"2025-06-01","time":"19:00","partySize":2,"customerName":"A","customerEmail":"nope","customerPhone":"(555) 123-4567"}`, "customerEmail"},
		{"bad phone", `{"date":"2025-06-01","time":"19:00","partySize":2,"customerName":"A","customerEmail":"a@b.com","customerPhone":"555-123-4567"}`, "customerPhone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, http.MethodPost, "/v1/reservations", tc.body, h.Create)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			fields := body["fields"].(map[string]any)
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestCreateReservationFullSlotConflicts(t *testing.T) {
	store := newMemStore()
	h := newBookingHandler(store)

	for i := 0; i < availability.SlotCapacity; i++ {
		rec := doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), h.Create)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), h.Create)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "This time slot is no longer available. Please select another time.", body["error"])

	// The same evening still accepts other slots.
	other := strings.Replace(validCreateBody(), `"19:00"`, `"19:30"`, 1)
	rec = doJSON(t, http.MethodPost, "/v1/reservations", other, h.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateReservationProceedsWhenCountFails(t *testing.T) {
	// A broken availability read must not block bookings.
	store := newMemStore()
	h := newBookingHandler(store)

	store.err = context.DeadlineExceeded
	rec := doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), h.Create)
	// The count fails open but the write itself also fails, so the
	// handler reports the save error rather than a conflict.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	store.err = nil
	rec = doJSON(t, http.MethodPost, "/v1/reservations", validCreateBody(), h.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetReservationByID(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Create(context.Background(), &model.TableReservation{
		Date: "2025-06-01", Time: "19:00", PartySize: 4,
		CustomerName: "Jane Doe", CustomerEmail: "jane@x.com",
		Status: model.StatusConfirmed,
	}))
	h := newBookingHandler(store)

	rec := doJSON(t, http.MethodGet, "/v1/reservations/1", "", h.GetByID, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	res := body["reservation"].(map[string]any)
	assert.Equal(t, float64(4), res["partySize"])

	rec = doJSON(t, http.MethodGet, "/v1/reservations/99", "", h.GetByID, "id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, http.MethodGet, "/v1/reservations/abc", "", h.GetByID, "id", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
