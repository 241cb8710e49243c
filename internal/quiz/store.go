package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("quiz: not found")

type Store interface {
	Create(ctx context.Context, q *Quiz) (*Quiz, error)
	Get(ctx context.Context, id uuid.UUID) (*Quiz, error)
	List(ctx context.Context) ([]Quiz, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) (*Quiz, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
