// Package bank enforces the business invariants around bank accounts before
// delegating to the store: name format and uniqueness on creation, positive
// rounded amounts on deposit and withdrawal, overdraft protection, and
// empty-balance checks on deletion.
package bank

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/money"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

const maxNameLength = 50

// Service validates account operations and delegates to an AccountStore.
type Service struct {
	accounts store.AccountStore
	log      *zap.Logger
}

// NewService creates an account Service.
func NewService(accounts store.AccountStore, log *zap.Logger) *Service {
	return &Service{accounts: accounts, log: log}
}

// Accounts returns every account in the store.
func (s *Service) Accounts() ([]model.Account, error) {
	return s.accounts.Accounts()
}

// AccountsByUser returns the accounts owned by a user.
func (s *Service) AccountsByUser(userID int) ([]model.Account, error) {
	return s.accounts.AccountsByUser(userID)
}

// AccountByID returns the account with the given ID, if any.
func (s *Service) AccountByID(id int) (model.Account, bool, error) {
	return s.accounts.AccountByID(id)
}

// AccountByName returns the named account owned by a user, if any.
func (s *Service) AccountByName(name string, userID int) (model.Account, bool, error) {
	return s.accounts.AccountByName(name, userID)
}

// Create validates and creates a new account, returning its ID.
//
// The checks run in a fixed order: name uniqueness for the owner, then name
// format, then balance sign. The initial balance is rounded to cents before
// it reaches the store.
func (s *Service) Create(name string, initialBalance decimal.Decimal, userID int) (int, error) {
	s.log.Debug("creating account", zap.String("name", name), zap.Int("user_id", userID))

	_, exists, err := s.accounts.AccountByName(name, userID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAccountExists
	}

	if name == "" {
		return 0, fmt.Errorf("%w: account name must not be empty", ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return 0, fmt.Errorf("%w: account name must be %d characters or less", ErrInvalidInput, maxNameLength)
	}
	if containsWhitespace(name) {
		return 0, fmt.Errorf("%w: account name must not contain whitespace", ErrInvalidInput)
	}
	if initialBalance.IsNegative() {
		return 0, fmt.Errorf("%w: initial balance must not be negative", ErrInvalidInput)
	}

	return s.accounts.CreateAccount(name, money.Round(initialBalance), userID)
}

// Delete removes an account. Only empty accounts may be deleted.
func (s *Service) Delete(accountID int) (store.Status, error) {
	s.log.Debug("deleting account", zap.Int("account_id", accountID))

	account, found, err := s.accounts.AccountByID(accountID)
	if err != nil {
		return store.StatusFailed, err
	}
	if !found {
		return store.StatusFailed, ErrAccountNotFound
	}
	if account.Balance.IsPositive() {
		return store.StatusFailed, ErrAccountNotEmpty
	}

	return s.accounts.DeleteAccount(accountID)
}

// Deposit adds a positive, rounded amount to an account.
func (s *Service) Deposit(accountID int, amount decimal.Decimal) (store.Status, error) {
	s.log.Debug("making deposit", zap.Int("account_id", accountID), zap.String("amount", amount.String()))

	_, found, err := s.accounts.AccountByID(accountID)
	if err != nil {
		return store.StatusFailed, err
	}
	if !found {
		return store.StatusFailed, ErrAccountNotFound
	}
	if !amount.IsPositive() {
		return store.StatusFailed, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidInput)
	}

	return s.accounts.Deposit(accountID, money.Round(amount))
}

// Withdraw removes a positive, rounded amount from an account. The rounded
// amount must not exceed the current balance.
//
// The existence check runs first; the overdraft check relies on the account
// having been loaded already.
func (s *Service) Withdraw(accountID int, amount decimal.Decimal) (store.Status, error) {
	s.log.Debug("making withdrawal", zap.Int("account_id", accountID), zap.String("amount", amount.String()))

	account, found, err := s.accounts.AccountByID(accountID)
	if err != nil {
		return store.StatusFailed, err
	}
	if !found {
		return store.StatusFailed, ErrAccountNotFound
	}
	if !amount.IsPositive() {
		return store.StatusFailed, fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidInput)
	}

	rounded := money.Round(amount)
	if account.Balance.LessThan(rounded) {
		return store.StatusFailed, ErrOverdraft
	}

	return s.accounts.Withdraw(accountID, rounded)
}

func containsWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}
