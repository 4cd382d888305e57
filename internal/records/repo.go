package records

import (
	"context"
	"errors"
)

// ErrInvalidRecord is returned when a record lacks its identifier.
var ErrInvalidRecord = errors.New("invalid record")

// Sink persists analysis records. Implementations are write-only.
type Sink interface {
	Save(ctx context.Context, rec Record) error
}

// NopSink discards records.
type NopSink struct{}

// Save does nothing.
func (NopSink) Save(ctx context.Context, rec Record) error {
	_ = ctx
	_ = rec
	return nil
}

func validate(rec Record) error {
	if rec.ID == "" {
		return ErrInvalidRecord
	}
	return nil
}
