package records

import (
	"context"
	"database/sql"
	"time"
)

// PGSink implements Sink using Postgres.
type PGSink struct {
	DB *sql.DB
}

// Save inserts the record into resume_analyses.
func (s *PGSink) Save(ctx context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	const query = `
INSERT INTO resume_analyses (id, resume_parse, think, response, created_at)
VALUES ($1, $2, $3, $4, $5)`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.DB.ExecContext(ctx, query, rec.ID, rec.ResumeParse, rec.Think, rec.Response, createdAt)
	return err
}
