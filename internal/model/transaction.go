package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger transaction.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Transaction records one deposit or withdrawal against an account. Rows are
// written by the store as a side effect of the mutation and never change.
type Transaction struct {
	ID        int
	Type      TransactionType
	Amount    decimal.Decimal
	Time      time.Time
	AccountID int
}

// String renders the transaction for reporting listings.
func (t Transaction) String() string {
	return fmt.Sprintf("%d %s %s %s account=%d",
		t.ID, t.Type, t.Amount.StringFixed(2), t.Time.Format(time.RFC3339), t.AccountID)
}
