package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
)

const transactionsHeader = "transaction_id,type,amount,time,account_id"

const (
	transactionFields = 5
	colTxnID          = 0
	colTxnType        = 1
	colTxnAmount      = 2
	colTxnTime        = 3
	colTxnAccountID   = 4
)

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, transactionFields)
	row[colTxnID] = strconv.Itoa(t.ID)
	row[colTxnType] = string(t.Type)
	row[colTxnAmount] = t.Amount.StringFixed(2)
	row[colTxnTime] = t.Time.Format(time.RFC3339)
	row[colTxnAccountID] = strconv.Itoa(t.AccountID)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != transactionFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", transactionFields, len(record))
	}

	id, err := strconv.Atoi(record[colTxnID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing transaction_id %q: %w", record[colTxnID], err)
	}

	amount, err := decimal.NewFromString(record[colTxnAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colTxnAmount], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colTxnTime])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing time %q: %w", record[colTxnTime], err)
	}

	accountID, err := strconv.Atoi(record[colTxnAccountID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing account_id %q: %w", record[colTxnAccountID], err)
	}

	return model.Transaction{
		ID:        id,
		Type:      model.TransactionType(record[colTxnType]),
		Amount:    amount,
		Time:      ts,
		AccountID: accountID,
	}, nil
}

// ReadTransactions reads transactions.csv rows (after the header).
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = transactionFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (s *Store) loadTransactions() ([]model.Transaction, error) {
	f, err := os.Open(s.path(transactionsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("opening transactions", err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, unavailable("reading transactions", err)
	}
	return txns, nil
}

// Transactions returns the full transaction log.
func (s *Store) Transactions() ([]model.Transaction, error) {
	return s.loadTransactions()
}

// TransactionsByUser returns the transactions against accounts owned by a
// user.
func (s *Store) TransactionsByUser(userID int) ([]model.Transaction, error) {
	accounts, err := s.AccountsByUser(userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		owned[a.ID] = true
	}

	txns, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	var result []model.Transaction
	for _, t := range txns {
		if owned[t.AccountID] {
			result = append(result, t)
		}
	}
	return result, nil
}

// appendTransaction writes one transaction row, creating the file and
// header if needed.
func (s *Store) appendTransaction(kind model.TransactionType, amount decimal.Decimal, accountID int, at time.Time) error {
	txns, err := s.loadTransactions()
	if err != nil {
		return err
	}
	id := 0
	for _, t := range txns {
		if t.ID > id {
			id = t.ID
		}
	}
	id++

	path := s.path(transactionsFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return unavailable("opening transactions", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(transactionsHeader, ",")); err != nil {
			return unavailable("writing transactions header", err)
		}
	}

	txn := model.Transaction{ID: id, Type: kind, Amount: amount, Time: at, AccountID: accountID}
	if err := cw.Write(MarshalTransaction(txn)); err != nil {
		return unavailable("writing transaction", err)
	}
	if err := cw.Error(); err != nil {
		return unavailable("flushing transaction", err)
	}
	return nil
}

// dropTransactions rewrites transactions.csv without the rows belonging to
// the given account IDs. Used when accounts are deleted.
func (s *Store) dropTransactions(accountIDs map[int]bool) error {
	txns, err := s.loadTransactions()
	if err != nil {
		return err
	}

	kept := txns[:0]
	changed := false
	for _, t := range txns {
		if accountIDs[t.AccountID] {
			changed = true
			continue
		}
		kept = append(kept, t)
	}
	if !changed {
		return nil
	}

	f, err := os.Create(s.path(transactionsFile))
	if err != nil {
		return unavailable("creating transactions file", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(transactionsHeader, ",")); err != nil {
		return unavailable("writing transactions header", err)
	}
	for _, t := range kept {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return unavailable("writing transaction", err)
		}
	}
	if err := cw.Error(); err != nil {
		return unavailable("flushing transactions", err)
	}
	return nil
}
