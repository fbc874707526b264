package repository

import (
	"context"
	"errors"

	"answerhub/internal/model"
)

// ErrNotFound signals that no answer exists for the requested identifier.
var ErrNotFound = errors.New("answer not found")

// AnswerRepository defines data access for answer records.
// No business logic here — strictly persistence operations.
type AnswerRepository interface {
	// Create persists a new answer record. The repository assigns the
	// identifier when the caller leaves it empty and returns the stored record.
	Create(ctx context.Context, a *model.Answer) (*model.Answer, error)

	// FindByID returns an answer by its identifier, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Answer, error)

	// List returns every answer ordered by uploadDate descending.
	// uploadDate is an unvalidated caller-supplied string, so the ordering is
	// lexicographic; ISO-8601 dates sort newest first, anything else is
	// undefined.
	List(ctx context.Context) ([]model.Answer, error)

	// Delete removes an answer by identifier. It returns nil whether or not
	// the record existed; callers that need a not-found signal look the
	// record up first.
	Delete(ctx context.Context, id string) error
}
