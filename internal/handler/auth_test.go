package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/9santoshki/saloon-reservation/internal/config"
	"github.com/9santoshki/saloon-reservation/internal/repository"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   60,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func authContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterStoreOwner(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(`INSERT INTO app_users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := echo.New()
	c, rec := authContext(e, `{"username":"owner1","email":"o@x.test","password":"pass1234","role":"store_owner","store_id":3}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User struct {
			ID      uint64  `json:"id"`
			Role    string  `json:"role"`
			StoreID *uint64 `json:"store_id"`
		} `json:"user"`
		Access  struct{ Token string } `json:"access"`
		Refresh struct{ Token string } `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.ID != 11 || resp.User.Role != "store_owner" {
		t.Errorf("user = %+v", resp.User)
	}
	if resp.User.StoreID == nil || *resp.User.StoreID != 3 {
		t.Errorf("store_id = %v, want 3", resp.User.StoreID)
	}
	if resp.Access.Token == "" || resp.Refresh.Token == "" {
		t.Errorf("tokens missing from response")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(`INSERT INTO app_users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "app_users_username_key"})

	e := echo.New()
	c, rec := authContext(e, `{"username":"taken","email":"t@x.test","password":"pass1234","role":"admin"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newAuthHandler(t)
	e := echo.New()
	cases := []struct {
		name string
		body string
	}{
		{"missing password", `{"username":"u","role":"admin"}`},
		{"bad role", `{"username":"u","password":"p","role":"customer"}`},
		{"owner without store", `{"username":"u","password":"p","role":"store_owner"}`},
	}
	for _, tc := range cases {
		c, rec := authContext(e, tc.body)
		if err := h.Register(c); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at = NOW\(\) WHERE user_id = \$1 AND revoked_at IS NULL`).
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout-all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(11))
	c.Set("role", "store_owner")
	if err := h.LogoutAll(c); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func userRow(hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "role", "store_id", "created_at", "updated_at",
	}).AddRow(11, "owner1", "o@x.test", hash, "store_owner", 3, time.Now(), time.Now())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM app_users WHERE username = \$1`).
		WithArgs("owner1").
		WillReturnRows(userRow(string(hash)))

	e := echo.New()
	c, rec := authContext(e, `{"username":"owner1","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLoginUnknownUserSameResponse(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(`FROM app_users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	e := echo.New()
	c, rec := authContext(e, `{"username":"ghost","password":"whatever"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Errorf("body = %s (unknown user must read like a bad password)", rec.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	h, mock := newAuthHandler(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM app_users WHERE username = \$1`).
		WithArgs("owner1").
		WillReturnRows(userRow(string(hash)))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := echo.New()
	c, rec := authContext(e, `{"username":"owner1","password":"correct"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"store_id":3`) {
		t.Errorf("response missing owned store: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
