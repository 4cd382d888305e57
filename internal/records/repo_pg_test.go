package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGSinkSaveInsertsRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sink := &PGSink{DB: db}
	rec := Record{
		ID:          "rec-1",
		ResumeParse: "Jane Doe, Go engineer",
		Think:       "<think>weighing",
		Response:    "Match Score: 82",
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO resume_analyses").
		WithArgs(rec.ID, rec.ResumeParse, rec.Think, rec.Response, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := sink.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGSinkSaveDefaultsCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO resume_analyses").
		WithArgs("rec-2", "text", "", "whole", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sink := &PGSink{DB: db}
	if err := sink.Save(context.Background(), Record{ID: "rec-2", ResumeParse: "text", Response: "whole"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGSinkSavePropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sentinel := errors.New("connection refused")
	mock.ExpectExec("INSERT INTO resume_analyses").WillReturnError(sentinel)

	sink := &PGSink{DB: db}
	if err := sink.Save(context.Background(), Record{ID: "rec-3"}); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestPGSinkRejectsMissingID(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sink := &PGSink{DB: db}
	if err := sink.Save(context.Background(), Record{}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}
