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
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

const accountsHeader = "account_id,name,balance,user_id"

const (
	accountFields  = 4
	colAccountID   = 0
	colAccountName = 1
	colBalance     = 2
	colOwnerID     = 3
)

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, accountFields)
	row[colAccountID] = strconv.Itoa(a.ID)
	row[colAccountName] = a.Name
	row[colBalance] = a.Balance.StringFixed(2)
	row[colOwnerID] = strconv.Itoa(a.UserID)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != accountFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", accountFields, len(record))
	}

	id, err := strconv.Atoi(record[colAccountID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[colAccountID], err)
	}

	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	userID, err := strconv.Atoi(record[colOwnerID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing user_id %q: %w", record[colOwnerID], err)
	}

	return model.Account{
		ID:      id,
		Name:    record[colAccountName],
		Balance: balance,
		UserID:  userID,
	}, nil
}

// ReadAccounts reads accounts.csv rows (after the header).
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = accountFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		a, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv (header included).
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(accountsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accounts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func (s *Store) loadAccounts() ([]model.Account, error) {
	f, err := os.Open(s.path(accountsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("opening accounts", err)
	}
	defer f.Close()

	accounts, err := ReadAccounts(f)
	if err != nil {
		return nil, unavailable("reading accounts", err)
	}
	return accounts, nil
}

func (s *Store) saveAccounts(accounts []model.Account) error {
	f, err := os.Create(s.path(accountsFile))
	if err != nil {
		return unavailable("creating accounts file", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accounts); err != nil {
		return unavailable("writing accounts", err)
	}
	return nil
}

// Accounts returns all accounts.
func (s *Store) Accounts() ([]model.Account, error) {
	return s.loadAccounts()
}

// AccountsByUser returns the accounts owned by a user.
func (s *Store) AccountsByUser(userID int) ([]model.Account, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return nil, err
	}
	var owned []model.Account
	for _, a := range accounts {
		if a.UserID == userID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

// AccountByID returns the account with the given ID, if any.
func (s *Store) AccountByID(id int) (model.Account, bool, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return model.Account{}, false, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, true, nil
		}
	}
	return model.Account{}, false, nil
}

// AccountByName returns the named account owned by a user, if any.
func (s *Store) AccountByName(name string, userID int) (model.Account, bool, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return model.Account{}, false, err
	}
	for _, a := range accounts {
		if a.UserID == userID && a.Name == name {
			return a, true, nil
		}
	}
	return model.Account{}, false, nil
}

// CreateAccount appends an account with the next sequential ID and returns
// the ID.
func (s *Store) CreateAccount(name string, balance decimal.Decimal, userID int) (int, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return 0, err
	}

	id := 0
	for _, a := range accounts {
		if a.ID > id {
			id = a.ID
		}
	}
	id++

	accounts = append(accounts, model.Account{ID: id, Name: name, Balance: balance, UserID: userID})
	if err := s.saveAccounts(accounts); err != nil {
		return 0, err
	}

	s.log.Debug("created account",
		zap.Int("account_id", id),
		zap.String("name", name),
		zap.Int("user_id", userID))
	return id, nil
}

// DeleteAccount removes an account and its transactions.
func (s *Store) DeleteAccount(id int) (store.Status, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return store.StatusFailed, err
	}

	kept := accounts[:0]
	found := false
	for _, a := range accounts {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return store.StatusRejected, nil
	}

	if err := s.saveAccounts(kept); err != nil {
		return store.StatusFailed, err
	}
	if err := s.dropTransactions(map[int]bool{id: true}); err != nil {
		return store.StatusFailed, err
	}

	s.log.Debug("deleted account", zap.Int("account_id", id))
	return store.StatusOK, nil
}

// Deposit adds to an account's balance and records a deposit transaction.
func (s *Store) Deposit(id int, amount decimal.Decimal) (store.Status, error) {
	return s.applyAmount(id, amount, model.TransactionDeposit)
}

// Withdraw subtracts from an account's balance and records a withdrawal
// transaction. Rejected if the balance would go negative.
func (s *Store) Withdraw(id int, amount decimal.Decimal) (store.Status, error) {
	return s.applyAmount(id, amount, model.TransactionWithdrawal)
}

func (s *Store) applyAmount(id int, amount decimal.Decimal, kind model.TransactionType) (store.Status, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return store.StatusFailed, err
	}

	idx := -1
	for i, a := range accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.StatusRejected, nil
	}

	switch kind {
	case model.TransactionDeposit:
		accounts[idx].Balance = accounts[idx].Balance.Add(amount)
	case model.TransactionWithdrawal:
		if accounts[idx].Balance.LessThan(amount) {
			return store.StatusRejected, nil
		}
		accounts[idx].Balance = accounts[idx].Balance.Sub(amount)
	}

	if err := s.saveAccounts(accounts); err != nil {
		return store.StatusFailed, err
	}
	if err := s.appendTransaction(kind, amount, id, time.Now()); err != nil {
		return store.StatusFailed, err
	}

	s.log.Debug("applied amount",
		zap.Int("account_id", id),
		zap.String("type", string(kind)),
		zap.String("amount", amount.StringFixed(2)))
	return store.StatusOK, nil
}
