package bank

import "errors"

// Validation errors returned by Service. Anything else coming out of a
// Service method is an infrastructure failure from the store.
var (
	// ErrAccountExists means the user already owns an account with the
	// requested name.
	ErrAccountExists = errors.New("account with this name is associated with this user")

	// ErrAccountNotFound means no account has the requested ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNotEmpty means the account still holds funds and cannot be
	// deleted.
	ErrAccountNotEmpty = errors.New("account must be emptied before it can be deleted")

	// ErrOverdraft means a withdrawal exceeds the current balance.
	ErrOverdraft = errors.New("insufficient funds to withdraw the given amount")

	// ErrInvalidInput means a name or amount failed format validation.
	ErrInvalidInput = errors.New("invalid input")
)
