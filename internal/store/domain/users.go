package domain

import "context"

type UserAccount struct {
	Id          int
	Username    string
	CoinBalance int64
}

// UserStats aggregates a user's balance with their order-journal totals.
type UserStats struct {
	CoinBalance    int64
	OrdersPlaced   int64
	ItemsPurchased int64
}

type UsersRepository interface {
	GetUserAccount(ctx context.Context, userId int) (UserAccount, error)
}
