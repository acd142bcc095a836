package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/store/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PurchaseHandler applies one purchase attempt against postgres. The user and
// item rows are locked for the whole read-validate-write window, always in the
// same order, so two attempts on the same rows serialize instead of deadlocking.
type PurchaseHandler struct {
	txManager database.TxManager
}

func NewPurchaseHandler(txManager database.TxManager) *PurchaseHandler {
	return &PurchaseHandler{
		txManager: txManager,
	}
}

func (ph *PurchaseHandler) HandlePurchase(ctx context.Context, userId, itemId int, quantity int64) (domain.Order, error) {
	var order domain.Order

	err := ph.txManager.WithinTransaction(ctx, func(ctx context.Context, executor database.QueryExecuter) error {
		user, err := LockUserAccount(ctx, executor, userId)
		if err != nil {
			return err
		}

		item, err := LockStoreItem(ctx, executor, itemId)
		if err != nil {
			return err
		}

		if err := domain.CheckAvailability(item, user, quantity); err != nil {
			return err
		}

		totalCost := item.Price * quantity
		order = domain.Order{
			UserId:          userId,
			ItemId:          itemId,
			Quantity:        quantity,
			PriceAtPurchase: item.Price,
			TotalAmount:     totalCost,
			Status:          domain.OrderStatusCompleted,
			Payment: domain.PaymentSnapshot{
				BalanceBefore: user.CoinBalance,
				BalanceAfter:  user.CoinBalance - totalCost,
				TransactionId: uuid.NewString(),
				Timestamp:     time.Now().UTC(),
			},
		}

		return applyPurchase(ctx, executor, &order)
	})

	if err != nil {
		return domain.Order{}, wrapTxError(err)
	}

	return order, nil
}

// LockUserAccount reads the user row under FOR UPDATE. A missing user yields
// (nil, nil) so validation can report it in the documented order.
func LockUserAccount(ctx context.Context, querier database.Querier, userId int) (*domain.UserAccount, error) {
	lockUserSQL := `SELECT id, username, coin_balance FROM users WHERE id = $1 FOR UPDATE`

	var user domain.UserAccount
	err := querier.QueryRow(ctx, lockUserSQL, userId).Scan(&user.Id, &user.Username, &user.CoinBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to lock user row: %w", err)
	}

	return &user, nil
}

// LockStoreItem reads the item row under FOR UPDATE. A missing item yields
// (nil, nil).
func LockStoreItem(ctx context.Context, querier database.Querier, itemId int) (*domain.StoreItem, error) {
	lockItemSQL := `SELECT id, name, price, inventory, sold_count, status FROM store_items WHERE id = $1 FOR UPDATE`

	var item domain.StoreItem
	err := querier.QueryRow(ctx, lockItemSQL, itemId).
		Scan(&item.Id, &item.Name, &item.Price, &item.Inventory, &item.SoldCount, &item.Status)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to lock item row: %w", err)
	}

	return &item, nil
}

func applyPurchase(ctx context.Context, executor database.QueryExecuter, order *domain.Order) error {
	updateBalanceSQL := `UPDATE users SET coin_balance = coin_balance - $1 WHERE id = $2`
	_, err := executor.Exec(ctx, updateBalanceSQL, order.TotalAmount, order.UserId)
	if err != nil {
		return fmt.Errorf("failed to update user balance: %w", err)
	}

	updateItemSQL := `UPDATE store_items SET inventory = inventory - $1, sold_count = sold_count + $1 WHERE id = $2`
	_, err = executor.Exec(ctx, updateItemSQL, order.Quantity, order.ItemId)
	if err != nil {
		return fmt.Errorf("failed to update item inventory: %w", err)
	}

	insertOrderSQL := `INSERT INTO orders
		(user_id, item_id, quantity, price_at_purchase, total_amount, status, balance_before, balance_after, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err = executor.QueryRow(ctx, insertOrderSQL,
		order.UserId, order.ItemId, order.Quantity, order.PriceAtPurchase, order.TotalAmount,
		order.Status, order.Payment.BalanceBefore, order.Payment.BalanceAfter,
		order.Payment.TransactionId, order.Payment.Timestamp,
	).Scan(&order.Id)
	if err != nil {
		return fmt.Errorf("failed to insert order record: %w", err)
	}

	return nil
}

func wrapTxError(err error) error {
	if database.IsTxConflict(err) {
		return &domain.TransactionConflictError{Msg: err.Error()}
	}

	return err
}
