package postgres

import (
	"testing"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/pkg/logging"
	"github.com/Slassh006/FF1/internal/store/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectLockedUser(mock pgxmock.PgxConnIface, userId int, balance int64) {
	rows := pgxmock.NewRows([]string{"id", "username", "coin_balance"}).
		AddRow(userId, "buyer", balance)
	mock.ExpectQuery("SELECT id, username, coin_balance FROM users").
		WithArgs(userId).
		WillReturnRows(rows)
}

func expectLockedItem(mock pgxmock.PgxConnIface, itemId int, price, inventory int64, status domain.ItemStatus) {
	rows := pgxmock.NewRows([]string{"id", "name", "price", "inventory", "sold_count", "status"}).
		AddRow(itemId, "golden-skin", price, &inventory, int64(0), status)
	mock.ExpectQuery("SELECT id, name, price, inventory, sold_count, status FROM store_items").
		WithArgs(itemId).
		WillReturnRows(rows)
}

func TestPurchaseHandler_HandlePurchase(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		userId   int
		itemId   int
		quantity int64

		prepareFn func(t *testing.T, mock pgxmock.PgxConnIface)

		expectedErr error
		checkOrder  func(t *testing.T, order domain.Order)
	}

	tests := []testCase{
		{
			name:     "successful purchase",
			userId:   1,
			itemId:   10,
			quantity: 2,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusActive)
				mock.ExpectExec("UPDATE users").
					WithArgs(int64(200), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec("UPDATE store_items").
					WithArgs(int64(2), 10).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery("INSERT INTO orders").
					WithArgs(1, 10, int64(2), int64(100), int64(200), domain.OrderStatusCompleted,
						int64(500), int64(300), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(77))
				mock.ExpectCommit()
				// Rollback in defer after commit returns ErrTxClosed, which is ignored
				mock.ExpectRollback().WillReturnError(pgx.ErrTxClosed)
			},
			expectedErr: nil,
			checkOrder: func(t *testing.T, order domain.Order) {
				t.Helper()
				assert.Equal(t, 77, order.Id)
				assert.Equal(t, int64(200), order.TotalAmount)
				assert.Equal(t, int64(100), order.PriceAtPurchase)
				assert.Equal(t, domain.OrderStatusCompleted, order.Status)
				assert.Equal(t, int64(500), order.Payment.BalanceBefore)
				assert.Equal(t, int64(300), order.Payment.BalanceAfter)
				assert.NotEmpty(t, order.Payment.TransactionId)
			},
		},
		{
			name:     "item not found",
			userId:   1,
			itemId:   404,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				mock.ExpectQuery("SELECT id, name, price, inventory, sold_count, status FROM store_items").
					WithArgs(404).
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price", "inventory", "sold_count", "status"}))
				mock.ExpectRollback()
			},
			expectedErr: &domain.ItemNotFoundError{},
		},
		{
			name:     "user not found",
			userId:   999,
			itemId:   10,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				mock.ExpectQuery("SELECT id, username, coin_balance FROM users").
					WithArgs(999).
					WillReturnRows(pgxmock.NewRows([]string{"id", "username", "coin_balance"}))
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusActive)
				mock.ExpectRollback()
			},
			expectedErr: &domain.UserNotFoundError{},
		},
		{
			name:     "inactive item",
			userId:   1,
			itemId:   10,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusInactive)
				mock.ExpectRollback()
			},
			expectedErr: &domain.ItemUnavailableError{},
		},
		{
			name:     "insufficient inventory",
			userId:   1,
			itemId:   10,
			quantity: 5,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusActive)
				mock.ExpectRollback()
			},
			expectedErr: &domain.ItemUnavailableError{},
		},
		{
			name:     "absent inventory",
			userId:   1,
			itemId:   12,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				rows := pgxmock.NewRows([]string{"id", "name", "price", "inventory", "sold_count", "status"}).
					AddRow(12, "digital-badge", int64(100), nil, int64(0), domain.ItemStatusActive)
				mock.ExpectQuery("SELECT id, name, price, inventory, sold_count, status FROM store_items").
					WithArgs(12).
					WillReturnRows(rows)
				mock.ExpectRollback()
			},
			expectedErr: &domain.ItemUnavailableError{},
		},
		{
			name:     "insufficient balance",
			userId:   1,
			itemId:   10,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 50)
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusActive)
				mock.ExpectRollback()
			},
			expectedErr: &domain.InsufficientBalanceError{},
		},
		{
			name:     "begin transaction error",
			userId:   1,
			itemId:   10,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted}).
					WillReturnError(assert.AnError)
			},
			expectedErr: assert.AnError,
		},
		{
			name:     "deadlock maps to transaction conflict",
			userId:   1,
			itemId:   10,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusActive)
				mock.ExpectExec("UPDATE users").
					WithArgs(int64(100), 1).
					WillReturnError(&pgconn.PgError{Code: "40P01"})
				mock.ExpectRollback()
			},
			expectedErr: &domain.TransactionConflictError{},
		},
		{
			name:     "commit error",
			userId:   1,
			itemId:   10,
			quantity: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				expectLockedUser(mock, 1, 500)
				expectLockedItem(mock, 10, 100, 3, domain.ItemStatusActive)
				mock.ExpectExec("UPDATE users").
					WithArgs(int64(100), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec("UPDATE store_items").
					WithArgs(int64(1), 10).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery("INSERT INTO orders").
					WithArgs(1, 10, int64(1), int64(100), int64(100), domain.OrderStatusCompleted,
						int64(500), int64(400), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(78))
				mock.ExpectCommit().WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewConn()
			require.NoError(t, err)
			defer mock.Close(t.Context())

			tt.prepareFn(t, mock)

			purchaseHandler := NewPurchaseHandler(database.NewDelegateTxManager(mock, logging.NopLogger))
			order, err := purchaseHandler.HandlePurchase(t.Context(), tt.userId, tt.itemId, tt.quantity)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			if tt.checkOrder != nil {
				tt.checkOrder(t, order)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
