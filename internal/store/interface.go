package store

import (
	"context"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Store persists summary records. Every read and delete is scoped to the
// owning user: a record id from another user never matches.
type Store interface {
	Append(ctx context.Context, rec model.SummaryRecord) error
	ListByOwner(ctx context.Context, userID string) ([]model.SummaryRecord, error)
	GetByOwner(ctx context.Context, id, userID string) (model.SummaryRecord, bool, error)
	DeleteByOwner(ctx context.Context, id, userID string) (bool, error)
}
