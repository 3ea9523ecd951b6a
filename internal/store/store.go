// Package store defines the persistence contract the validation services
// depend on. Implementations are free to back it with anything; the core
// only sees these interfaces.
//
// "No rows" and "could not ask" are distinct outcomes: single-row lookups
// return a found flag alongside the error, and a non-nil error always means
// an infrastructure failure, never an empty result. Infrastructure errors
// wrap ErrUnavailable so callers can branch on the kind.
package store

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
)

// Status is the tri-state outcome of a mutating store call.
type Status int

const (
	// StatusOK means the mutation was applied.
	StatusOK Status = 1
	// StatusRejected means the store refused the mutation (constraint
	// violation); nothing was changed.
	StatusRejected Status = 0
	// StatusFailed means an infrastructure error prevented the call; the
	// accompanying error carries detail.
	StatusFailed Status = -1
)

// ErrUnavailable marks infrastructure failures: the store could not be
// asked. Wrapped by implementations, never returned bare.
var ErrUnavailable = errors.New("store unavailable")

// LoginFailed is the sentinel user ID Login returns for a credential
// mismatch.
const LoginFailed = 0

// UserStore persists users.
type UserStore interface {
	Users() ([]model.User, error)
	UserByID(id int) (model.User, bool, error)
	UserByUsername(username string) (model.User, bool, error)
	// CreateUser returns the new user's ID.
	CreateUser(username, password string) (int, error)
	DeleteUser(id int) (Status, error)
	UpdatePassword(id int, password string) (Status, error)
	// Login returns the matching user's ID, or LoginFailed when the
	// credentials match no user.
	Login(username, password string) (int, error)
}

// AccountStore persists bank accounts. Deposit and Withdraw record a
// transaction as a side effect of the balance change.
type AccountStore interface {
	Accounts() ([]model.Account, error)
	AccountsByUser(userID int) ([]model.Account, error)
	AccountByID(id int) (model.Account, bool, error)
	AccountByName(name string, userID int) (model.Account, bool, error)
	// CreateAccount returns the new account's ID.
	CreateAccount(name string, balance decimal.Decimal, userID int) (int, error)
	DeleteAccount(id int) (Status, error)
	Deposit(id int, amount decimal.Decimal) (Status, error)
	Withdraw(id int, amount decimal.Decimal) (Status, error)
}

// TransactionStore reads the transaction log. Transactions are written only
// as side effects of account mutations; nothing deletes or updates them.
type TransactionStore interface {
	Transactions() ([]model.Transaction, error)
	TransactionsByUser(userID int) ([]model.Transaction, error)
}
