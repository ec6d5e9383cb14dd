package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/9santoshki/saloon-reservation/internal/repository"
)

func newReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	h := NewReservationHandler(
		repository.NewReservationRepo(db),
		repository.NewStoreRepo(db),
		repository.NewServiceRepo(db),
	)
	return h, mock
}

func reservationContext(e *echo.Echo, method, target, body string, userID uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(userID))
	c.Set("role", role)
	return c, rec
}

func cancelledRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "store_id", "service_id", "to_char", "to_char",
		"duration", "total_amount", "status", "payment_status", "payment_method",
		"created_at", "updated_at",
	}).AddRow(5, 11, 2, 7, "2026-09-01", "14:30", 30, 25.0, "cancelled", "paid", "card", now, now)
}

func TestListReservationsRejectsOtherUser(t *testing.T) {
	h, _ := newReservationHandler(t)
	e := echo.New()
	c, _ := reservationContext(e, http.MethodGet, "/api/reservations/99", "", 11, "store_owner")
	c.SetParamNames("userId")
	c.SetParamValues("99")

	err := h.ListReservations(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("err = %v, want 403 HTTPError", err)
	}
}

func TestListReservationsAdminReadsAnyUser(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectQuery(`FROM reservations WHERE user_id = \$1`).
		WithArgs(uint64(99)).
		WillReturnRows(cancelledRow())

	e := echo.New()
	c, rec := reservationContext(e, http.MethodGet, "/api/reservations/99", "", 1, "admin")
	c.SetParamNames("userId")
	c.SetParamValues("99")
	if err := h.ListReservations(c); err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateReservationValidatesDateAndTime(t *testing.T) {
	h, _ := newReservationHandler(t)
	e := echo.New()
	cases := []struct {
		name string
		body string
	}{
		{"bad date", `{"store_id":2,"service_id":7,"reservation_date":"01-09-2026","reservation_time":"14:30"}`},
		{"bad time", `{"store_id":2,"service_id":7,"reservation_date":"2026-09-01","reservation_time":"2pm"}`},
		{"missing ids", `{"reservation_date":"2026-09-01","reservation_time":"14:30"}`},
	}
	for _, tc := range cases {
		c, rec := reservationContext(e, http.MethodPost, "/api/reservations", tc.body, 11, "store_owner")
		if err := h.CreateReservation(c); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestCreateReservationTakesUserFromToken(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.MatchExpectationsInOrder(false)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO reservations`).
		WithArgs(uint64(11), uint64(2), uint64(7), "2026-09-01", "14:30",
			uint32(30), 25.0, "card").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "payment_status", "created_at", "updated_at"}).
			AddRow(5, "confirmed", "paid", now, now))

	e := echo.New()
	// The body carries no user id; the handler books under the credential.
	body := `{"store_id":2,"service_id":7,"reservation_date":"2026-09-01","reservation_time":"14:30","duration":30,"total_amount":25,"payment_method":"card"}`
	c, rec := reservationContext(e, http.MethodPost, "/api/reservations", body, 11, "store_owner")
	if err := h.CreateReservation(c); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"user_id":11`) {
		t.Errorf("response not booked under caller: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"payment_status":"paid"`) {
		t.Errorf("payment_status not paid: %s", rec.Body.String())
	}
	// The confirmation event goroutine may issue further lookups; those are
	// best-effort and not asserted here.
}

func TestCancelReservationIdempotent(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectQuery(`UPDATE reservations`).
		WithArgs(uint64(5), uint64(11)).
		WillReturnRows(cancelledRow())
	mock.ExpectQuery(`UPDATE reservations`).
		WithArgs(uint64(5), uint64(11)).
		WillReturnRows(cancelledRow())

	e := echo.New()
	for i := 0; i < 2; i++ {
		c, rec := reservationContext(e, http.MethodPut, "/api/reservations/5/cancel", "", 11, "store_owner")
		c.SetParamNames("reservationId")
		c.SetParamValues("5")
		if err := h.CancelReservation(c); err != nil {
			t.Fatalf("CancelReservation: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("cancel %d: status = %d, want 200", i+1, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"cancelled"`) {
			t.Errorf("cancel %d: body %s", i+1, rec.Body.String())
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCancelReservationForeignUser(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectQuery(`UPDATE reservations`).
		WithArgs(uint64(5), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	e := echo.New()
	c, rec := reservationContext(e, http.MethodPut, "/api/reservations/5/cancel", "", 99, "store_owner")
	c.SetParamNames("reservationId")
	c.SetParamValues("5")
	if err := h.CancelReservation(c); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
