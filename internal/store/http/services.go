package http

import (
	"context"

	"github.com/Slassh006/FF1/internal/store/domain"
)

type PurchaseService interface {
	Purchase(ctx context.Context, userId, itemId int, quantity int64, idempotencyKey string) (domain.Order, error)
}

type CatalogService interface {
	ListActiveItems(ctx context.Context) ([]domain.StoreItem, error)
}

type StatsService interface {
	GetUserStats(ctx context.Context, userId int) (domain.UserStats, error)
}
