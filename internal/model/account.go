package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is a bank account owned by a single user. The ID is assigned by
// the store; Name is the user-chosen identifier, unique per owner.
type Account struct {
	ID      int
	Name    string
	Balance decimal.Decimal
	UserID  int
}

// String renders the account the way the interactive menus list it.
func (a Account) String() string {
	return fmt.Sprintf("%s %s", a.Name, a.Balance.StringFixed(2))
}
