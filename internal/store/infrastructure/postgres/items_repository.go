package postgres

import (
	"context"
	"fmt"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/store/domain"
)

type ItemsRepository struct {
	querier database.Querier
}

func NewItemsRepository(querier database.Querier) *ItemsRepository {
	return &ItemsRepository{
		querier: querier,
	}
}

func (ir *ItemsRepository) GetActiveItems(ctx context.Context) ([]domain.StoreItem, error) {
	findItemsSQL := `SELECT id, name, price, inventory, sold_count, status
		FROM store_items WHERE status = $1 ORDER BY id DESC`

	rows, err := ir.querier.Query(ctx, findItemsSQL, domain.ItemStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query active items: %w", err)
	}
	defer rows.Close()

	var items []domain.StoreItem
	for rows.Next() {
		var item domain.StoreItem
		if err := rows.Scan(&item.Id, &item.Name, &item.Price, &item.Inventory, &item.SoldCount, &item.Status); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item rows: %w", err)
	}

	return items, nil
}
