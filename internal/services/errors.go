package services

import (
	"context"
	"errors"

	"github.com/moodlog/api/internal/types"
)

// storageError converts a storage-layer failure into the typed taxonomy.
// Typed errors pass through unchanged; cancellation of a request's database
// work maps to an internal error, never a silent success.
func storageError(err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.NewInternal("request canceled")
	}
	return types.NewInternal(err.Error())
}
