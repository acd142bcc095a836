package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/store/domain"
	"github.com/jackc/pgx/v5"
)

type UsersRepository struct {
	querier database.Querier
}

func NewUsersRepository(querier database.Querier) *UsersRepository {
	return &UsersRepository{
		querier: querier,
	}
}

func (ur *UsersRepository) GetUserAccount(ctx context.Context, userId int) (domain.UserAccount, error) {
	findUserSQL := `SELECT id, username, coin_balance FROM users WHERE id = $1`

	var user domain.UserAccount
	err := ur.querier.QueryRow(ctx, findUserSQL, userId).Scan(&user.Id, &user.Username, &user.CoinBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserAccount{}, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userId)}
		}

		return domain.UserAccount{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
