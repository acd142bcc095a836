package domain

import "fmt"

// CheckAvailability decides whether a purchase of quantity units is admissible
// given the freshest reads of the item and the user. A nil item or user means
// the record does not exist. Checks short-circuit: the first failing one wins.
func CheckAvailability(item *StoreItem, user *UserAccount, quantity int64) error {
	if item == nil {
		return &ItemNotFoundError{Msg: "item not found"}
	}

	if item.Status != ItemStatusActive || item.Inventory == nil || *item.Inventory < quantity {
		return &ItemUnavailableError{Msg: fmt.Sprintf("item %s is not available or has insufficient inventory", item.Name)}
	}

	if user == nil {
		return &UserNotFoundError{Msg: "user not found"}
	}

	if user.CoinBalance < item.Price*quantity {
		return &InsufficientBalanceError{Msg: "insufficient coin balance"}
	}

	return nil
}
