package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
)

// PaymentSnapshot records the balance movement behind an order. It is written
// once at commit time and never changes afterwards.
type PaymentSnapshot struct {
	BalanceBefore int64
	BalanceAfter  int64
	TransactionId string
	Timestamp     time.Time
}

// Order is the immutable result of one committed purchase. PriceAtPurchase is
// decoupled from later catalog price changes.
type Order struct {
	Id              int
	UserId          int
	ItemId          int
	Quantity        int64
	PriceAtPurchase int64
	TotalAmount     int64
	Status          OrderStatus
	Payment         PaymentSnapshot
}

// OrderStats is an aggregate over the order journal.
type OrderStats struct {
	OrderCount    int64
	TotalQuantity int64
}

type OrdersRepository interface {
	GetUserOrderStats(ctx context.Context, userId int) (OrderStats, error)
	GetItemOrderStats(ctx context.Context, itemId int) (OrderStats, error)
}

// PurchaseHandler runs one purchase attempt as a single atomic unit: either
// the balance debit, the inventory decrement and the order insert all become
// durable, or none of them do.
type PurchaseHandler interface {
	HandlePurchase(ctx context.Context, userId, itemId int, quantity int64) (Order, error)
}

// IdempotencyGuard fences duplicate purchase submissions that share a
// client-chosen key. After a purchase commits, Remember binds the key to the
// committed order id so a retried submission can Recall it instead of losing
// the result.
type IdempotencyGuard interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Remember(ctx context.Context, key string, orderId int) error
	Recall(ctx context.Context, key string) (int, bool, error)
	Unlock(ctx context.Context, key string) error
}
