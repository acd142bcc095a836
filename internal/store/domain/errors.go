package domain

//region InvalidArgumentsError

type InvalidArgumentsError struct {
	Msg string
}

func (e *InvalidArgumentsError) Error() string {
	return e.Msg
}

func (e *InvalidArgumentsError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentsError)
	return ok
}

//endregion

//region ItemNotFoundError

type ItemNotFoundError struct {
	Msg string
}

func (e *ItemNotFoundError) Error() string {
	return e.Msg
}

func (e *ItemNotFoundError) Is(target error) bool {
	_, ok := target.(*ItemNotFoundError)
	return ok
}

//endregion

//region ItemUnavailableError

type ItemUnavailableError struct {
	Msg string
}

func (e *ItemUnavailableError) Error() string {
	return e.Msg
}

func (e *ItemUnavailableError) Is(target error) bool {
	_, ok := target.(*ItemUnavailableError)
	return ok
}

//endregion

//region UserNotFoundError

type UserNotFoundError struct {
	Msg string
}

func (e *UserNotFoundError) Error() string {
	return e.Msg
}

func (e *UserNotFoundError) Is(target error) bool {
	_, ok := target.(*UserNotFoundError)
	return ok
}

//endregion

//region InsufficientBalanceError

type InsufficientBalanceError struct {
	Msg string
}

func (e *InsufficientBalanceError) Error() string {
	return e.Msg
}

func (e *InsufficientBalanceError) Is(target error) bool {
	_, ok := target.(*InsufficientBalanceError)
	return ok
}

//endregion

//region TransactionConflictError

type TransactionConflictError struct {
	Msg string
}

func (e *TransactionConflictError) Error() string {
	return e.Msg
}

func (e *TransactionConflictError) Is(target error) bool {
	_, ok := target.(*TransactionConflictError)
	return ok
}

//endregion

//region DuplicateRequestError

// OrderId is non-zero when the earlier submission already committed, so the
// caller can recover the order it never saw the response for.
type DuplicateRequestError struct {
	Msg     string
	OrderId int
}

func (e *DuplicateRequestError) Error() string {
	return e.Msg
}

func (e *DuplicateRequestError) Is(target error) bool {
	_, ok := target.(*DuplicateRequestError)
	return ok
}

//endregion
