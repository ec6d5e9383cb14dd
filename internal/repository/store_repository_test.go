package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/9santoshki/saloon-reservation/internal/model"
)

func newStoreRepo(t *testing.T) (*StoreRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStoreRepo(db), mock
}

func storeRow(hours string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "address", "latitude", "longitude", "phone", "email",
		"description", "opening_hours", "created_at", "updated_at",
	}).AddRow(2, "Serenity Spa", "1 Main St", 52.52, 13.40, "030-1234",
		"hello@serenity.test", "Day spa", []byte(hours), now, now)
}

func TestStoreGetByIDDecodesOpeningHours(t *testing.T) {
	repo, mock := newStoreRepo(t)
	mock.ExpectQuery(`FROM stores WHERE id = \$1`).
		WithArgs(uint64(2)).
		WillReturnRows(storeRow(`{"monday":{"open":"09:00","close":"18:00"}}`))

	s, err := repo.GetByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	day, ok := s.OpeningHours["monday"]
	if !ok {
		t.Fatalf("opening hours not decoded: %+v", s.OpeningHours)
	}
	if day.Open != "09:00" || day.Close != "18:00" {
		t.Errorf("monday = %+v", day)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreGetByIDMissing(t *testing.T) {
	repo, mock := newStoreRepo(t)
	mock.ExpectQuery(`FROM stores WHERE id = \$1`).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestStoreCreateEncodesOpeningHours(t *testing.T) {
	repo, mock := newStoreRepo(t)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO stores`).
		WithArgs("Serenity Spa", "1 Main St", 52.52, 13.40, "030-1234",
			"hello@serenity.test", "Day spa",
			[]byte(`{"monday":{"open":"09:00","close":"18:00"}}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(2, now, now))

	s := &model.Store{
		Name: "Serenity Spa", Address: "1 Main St",
		Latitude: 52.52, Longitude: 13.40,
		Phone: "030-1234", Email: "hello@serenity.test", Description: "Day spa",
		OpeningHours: model.OpeningHours{"monday": {Open: "09:00", Close: "18:00"}},
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID != 2 {
		t.Errorf("ID = %d, want 2", s.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreUpdateMissing(t *testing.T) {
	repo, mock := newStoreRepo(t)
	mock.ExpectQuery(`UPDATE stores`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	err := repo.Update(context.Background(), &model.Store{ID: 404, Name: "Ghost"})
	if !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	repo, mock := newStoreRepo(t)
	mock.ExpectExec(`DELETE FROM stores WHERE id = \$1`).
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec(`DELETE FROM stores WHERE id = \$1`).
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("second delete err = %v, want ErrStoreNotFound", err)
	}
}
