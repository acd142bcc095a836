package postgres

import (
	"context"
	"fmt"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/store/domain"
)

// OrdersRepository reads the order journal. Orders are append-only; nothing
// here mutates them.
type OrdersRepository struct {
	querier database.Querier
}

func NewOrdersRepository(querier database.Querier) *OrdersRepository {
	return &OrdersRepository{
		querier: querier,
	}
}

func (or *OrdersRepository) GetUserOrderStats(ctx context.Context, userId int) (domain.OrderStats, error) {
	statsSQL := `SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM orders WHERE user_id = $1 AND status = $2`

	return or.queryStats(ctx, statsSQL, userId)
}

func (or *OrdersRepository) GetItemOrderStats(ctx context.Context, itemId int) (domain.OrderStats, error) {
	statsSQL := `SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM orders WHERE item_id = $1 AND status = $2`

	return or.queryStats(ctx, statsSQL, itemId)
}

func (or *OrdersRepository) queryStats(ctx context.Context, statsSQL string, id int) (domain.OrderStats, error) {
	var stats domain.OrderStats
	err := or.querier.QueryRow(ctx, statsSQL, id, domain.OrderStatusCompleted).
		Scan(&stats.OrderCount, &stats.TotalQuantity)

	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("failed to query order stats: %w", err)
	}

	return stats, nil
}
