package domain

import "context"

type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// StoreItem is a catalog entry. Inventory is nil when the column is NULL;
// such items are treated as out of stock, not as unlimited.
type StoreItem struct {
	Id        int
	Name      string
	Price     int64
	Inventory *int64
	SoldCount int64
	Status    ItemStatus
}

type ItemsRepository interface {
	GetActiveItems(ctx context.Context) ([]StoreItem, error)
}
