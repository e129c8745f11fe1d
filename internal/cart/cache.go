package cart

import (
	"context"
	"errors"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

type Cache interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Set(ctx context.Context, sessionID string, items []domain.CartItem) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")
