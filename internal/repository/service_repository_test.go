package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/9santoshki/saloon-reservation/internal/model"
)

func newMockDB(t *testing.T) (*ServiceRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewServiceRepo(db), mock
}

func serviceRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "store_id", "name", "description", "duration", "price", "created_at", "updated_at",
	}).AddRow(1, 2, "Haircut", "Classic cut", 30, 25.0, now, now)
}

func TestServiceListByStore(t *testing.T) {
	repo, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM services WHERE store_id = \$1 ORDER BY name`).
		WithArgs(uint64(2)).
		WillReturnRows(serviceRows())

	out, err := repo.ListByStore(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByStore: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Haircut" || out[0].StoreID != 2 {
		t.Errorf("unexpected result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServiceCreatePopulatesGenerated(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO services`).
		WithArgs(uint64(2), "Haircut", "Classic cut", uint32(30), 25.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	s := &model.Service{StoreID: 2, Name: "Haircut", Description: "Classic cut", Duration: 30, Price: 25.0}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID != 7 {
		t.Errorf("ID = %d, want 7", s.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServiceUpdateOwnedForeignStore(t *testing.T) {
	repo, mock := newMockDB(t)
	// No row matches the id+store predicate, but the id exists elsewhere.
	mock.ExpectQuery(`UPDATE services`).
		WithArgs("Haircut", "Classic cut", uint32(30), 25.0, uint64(7), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	s := &model.Service{ID: 7, StoreID: 2, Name: "Haircut", Description: "Classic cut", Duration: 30, Price: 25.0}
	err := repo.UpdateOwned(context.Background(), s)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServiceUpdateOwnedMissing(t *testing.T) {
	repo, mock := newMockDB(t)
	mock.ExpectQuery(`UPDATE services`).
		WithArgs("Haircut", "Classic cut", uint32(30), 25.0, uint64(404), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	s := &model.Service{ID: 404, StoreID: 2, Name: "Haircut", Description: "Classic cut", Duration: 30, Price: 25.0}
	err := repo.UpdateOwned(context.Background(), s)
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("err = %v, want ErrServiceNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServiceDeleteOwned(t *testing.T) {
	repo, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM services WHERE id = \$1 AND store_id = \$2`).
		WithArgs(uint64(7), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteOwned(context.Background(), 7, 2); err != nil {
		t.Fatalf("DeleteOwned: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServiceDeleteOwnedForeignStore(t *testing.T) {
	repo, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM services`).
		WithArgs(uint64(7), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.DeleteOwned(context.Background(), 7, 99)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
