package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Slassh006/FF1/internal/pkg/logging"
	"github.com/Slassh006/FF1/internal/store/domain"
)

const (
	maxPurchaseAttempts = 3
	baseRetryBackoff    = 25 * time.Millisecond
)

// PurchaseCase coordinates one purchase attempt. Business rejections are
// surfaced as-is; transaction conflicts are retried with exponential backoff
// because a conflicted attempt is guaranteed to have applied nothing.
type PurchaseCase struct {
	purchaseHandler domain.PurchaseHandler
	idempotency     domain.IdempotencyGuard
	logger          logging.Logger
}

// NewPurchaseCase builds the coordinator. idempotency may be nil, which
// disables the duplicate-submission guard.
func NewPurchaseCase(purchaseHandler domain.PurchaseHandler, idempotency domain.IdempotencyGuard, logger logging.Logger) *PurchaseCase {
	return &PurchaseCase{
		purchaseHandler: purchaseHandler,
		idempotency:     idempotency,
		logger:          logger,
	}
}

func (pc *PurchaseCase) Purchase(ctx context.Context, userId, itemId int, quantity int64, idempotencyKey string) (domain.Order, error) {
	if quantity <= 0 {
		return domain.Order{}, &domain.InvalidArgumentsError{Msg: "quantity must be a positive integer"}
	}

	if userId <= 0 || itemId <= 0 {
		return domain.Order{}, &domain.InvalidArgumentsError{Msg: "user id and item id must be positive"}
	}

	guarded := pc.idempotency != nil && idempotencyKey != ""
	if guarded {
		ok, err := pc.idempotency.TryLock(ctx, idempotencyKey)
		if err != nil {
			return domain.Order{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return domain.Order{}, pc.duplicateRequest(ctx, idempotencyKey)
		}
	}

	order, err := pc.purchaseWithRetry(ctx, userId, itemId, quantity)
	if err != nil {
		if guarded {
			pc.releaseIdempotencyLock(ctx, idempotencyKey)
		}

		return domain.Order{}, err
	}

	if guarded {
		pc.rememberOrder(ctx, idempotencyKey, order.Id)
	}

	return order, nil
}

// duplicateRequest builds the rejection for a key that is already taken. When
// the earlier submission committed, the stored order id is carried along so
// the caller can recover a result it may never have received.
func (pc *PurchaseCase) duplicateRequest(ctx context.Context, idempotencyKey string) error {
	orderId, found, err := pc.idempotency.Recall(ctx, idempotencyKey)
	if err != nil {
		pc.logger.Error("failed to recall idempotent order", "key", idempotencyKey, "error", err)
	}
	if found {
		return &domain.DuplicateRequestError{
			Msg:     "a purchase with this idempotency key already completed",
			OrderId: orderId,
		}
	}

	return &domain.DuplicateRequestError{Msg: "a purchase with this idempotency key was already submitted"}
}

// rememberOrder binds the key to the committed order id. The purchase is
// already durable at this point, so a recording failure is logged, not
// surfaced. Runs detached from ctx cancellation.
func (pc *PurchaseCase) rememberOrder(ctx context.Context, idempotencyKey string, orderId int) {
	if err := pc.idempotency.Remember(context.WithoutCancel(ctx), idempotencyKey, orderId); err != nil {
		pc.logger.Error("failed to record idempotent order", "key", idempotencyKey, "orderId", orderId, "error", err)
	}
}

func (pc *PurchaseCase) purchaseWithRetry(ctx context.Context, userId, itemId int, quantity int64) (domain.Order, error) {
	backoff := baseRetryBackoff

	var lastErr error
	for attempt := 1; attempt <= maxPurchaseAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return domain.Order{}, ctx.Err()
			case <-time.After(backoff):
			}

			backoff *= 2
		}

		order, err := pc.purchaseHandler.HandlePurchase(ctx, userId, itemId, quantity)
		if err == nil {
			return order, nil
		}

		if !errors.Is(err, &domain.TransactionConflictError{}) {
			return domain.Order{}, err
		}

		pc.logger.Warn("purchase attempt hit a transaction conflict",
			"attempt", attempt, "userId", userId, "itemId", itemId)
		lastErr = err
	}

	return domain.Order{}, lastErr
}

// releaseIdempotencyLock frees the key after a failed attempt so the caller
// can retry deliberately. Runs detached from ctx cancellation to avoid
// leaking the lock until TTL.
func (pc *PurchaseCase) releaseIdempotencyLock(ctx context.Context, idempotencyKey string) {
	if err := pc.idempotency.Unlock(context.WithoutCancel(ctx), idempotencyKey); err != nil {
		pc.logger.Error("failed to release idempotency lock", "key", idempotencyKey, "error", err)
	}
}
