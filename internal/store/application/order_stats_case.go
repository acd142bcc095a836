package application

import (
	"context"

	"github.com/Slassh006/FF1/internal/store/domain"
)

type OrderStatsCase struct {
	usersRepository  domain.UsersRepository
	ordersRepository domain.OrdersRepository
}

func NewOrderStatsCase(usersRepository domain.UsersRepository, ordersRepository domain.OrdersRepository) *OrderStatsCase {
	return &OrderStatsCase{
		usersRepository:  usersRepository,
		ordersRepository: ordersRepository,
	}
}

func (oc *OrderStatsCase) GetUserStats(ctx context.Context, userId int) (domain.UserStats, error) {
	user, err := oc.usersRepository.GetUserAccount(ctx, userId)
	if err != nil {
		return domain.UserStats{}, err
	}

	stats, err := oc.ordersRepository.GetUserOrderStats(ctx, userId)
	if err != nil {
		return domain.UserStats{}, err
	}

	return domain.UserStats{
		CoinBalance:    user.CoinBalance,
		OrdersPlaced:   stats.OrderCount,
		ItemsPurchased: stats.TotalQuantity,
	}, nil
}

func (oc *OrderStatsCase) GetItemStats(ctx context.Context, itemId int) (domain.OrderStats, error) {
	return oc.ordersRepository.GetItemOrderStats(ctx, itemId)
}
