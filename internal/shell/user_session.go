package shell

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/bank"
	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
	"github.com/tellerdesk-dev/tellerdesk/internal/users"
)

// userSession drives the logged-in user's menu until logout.
func (s *Shell) userSession(userID int) {
	userMenu, err := buildMenu([][2]string{
		{"View bank accounts", "View"},
		{"Create new bank account", "Create"},
		{"Delete bank account", "Delete"},
		{"Deposit into bank account", "Deposit"},
		{"Withdraw from bank account", "Withdraw"},
		{"View transaction history", "Transaction"},
		{"Change password", "Change"},
		{"Logout", "Logout"},
	})
	if err != nil {
		s.log.Error("building user menu", zap.Error(err))
		return
	}

	actor := fmt.Sprintf("user-%d", userID)
	if user, found, err := s.users.UserByID(userID); err == nil && found {
		actor = user.Username
		fmt.Fprintf(s.out, "Welcome, %s\n", user.Username)
	}

	for {
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, userMenu.String())
		fmt.Fprintln(s.out, "Select an option.")

		input, ok := s.readLine()
		if !ok {
			return
		}

		switch userMenu.Select(input) {
		case 1:
			s.viewAccounts(userID)
		case 2:
			s.createAccount(userID, actor)
		case 3:
			s.deleteAccount(userID, actor)
		case 4:
			s.deposit(userID, actor)
		case 5:
			s.withdraw(userID, actor)
		case 6:
			s.viewTransactions(userID)
		case 7:
			s.changePassword(userID, actor)
		case 8:
			fmt.Fprintln(s.out, "Logging out.")
			return
		default:
			fmt.Fprintln(s.out, "Invalid menu selection.")
		}

		if s.eof {
			return
		}
	}
}

func (s *Shell) viewAccounts(userID int) {
	accounts, err := s.accounts.AccountsByUser(userID)
	if err != nil {
		fmt.Fprintln(s.out, "Error while getting accounts.")
		return
	}
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No existing accounts.")
		return
	}
	for _, account := range accounts {
		fmt.Fprintln(s.out, account.String())
	}
}

func (s *Shell) createAccount(userID int, actor string) {
	fmt.Fprintln(s.out, "Enter the identifier you would like to use for this account (must contain no whitespace, non-empty, and less than 50 characters)")
	name, ok := s.readLine()
	if !ok {
		return
	}
	balance, ok := s.promptAmount("Enter the initial balance of this account")
	if !ok {
		return
	}

	accountID, err := s.accounts.Create(name, balance, userID)
	switch {
	case errors.Is(err, bank.ErrAccountExists), errors.Is(err, bank.ErrInvalidInput):
		fmt.Fprintln(s.out, err)
		s.audit(actor, "create-account", "name="+name, outcomeRejected)
	case err != nil:
		fmt.Fprintln(s.out, "Could not create an account. Please try again.")
		s.audit(actor, "create-account", "name="+name, outcomeError)
	default:
		fmt.Fprintln(s.out, "Account successfully created")
		s.audit(actor, "create-account", fmt.Sprintf("name=%s account_id=%d", name, accountID), outcomeOK)
	}
}

func (s *Shell) deleteAccount(userID int, actor string) {
	account, ok := s.chooseAccount(userID)
	if !ok {
		return
	}

	status, err := s.accounts.Delete(account.ID)
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		fmt.Fprintln(s.out, "Account not found.")
	case errors.Is(err, bank.ErrAccountNotEmpty):
		fmt.Fprintln(s.out, "Given account is not empty. Accounts must be emptied before being able to be deleted.")
	case err != nil:
		fmt.Fprintln(s.out, "Could not delete the account. Please try again.")
		s.audit(actor, "delete-account", fmt.Sprintf("account_id=%d", account.ID), outcomeError)
	case status == store.StatusOK:
		fmt.Fprintln(s.out, "Account successfully deleted")
		s.audit(actor, "delete-account", fmt.Sprintf("account_id=%d", account.ID), outcomeOK)
	default:
		fmt.Fprintln(s.out, "Could not delete the account. Please try again.")
		s.audit(actor, "delete-account", fmt.Sprintf("account_id=%d", account.ID), statusOutcome(status))
	}
}

func (s *Shell) deposit(userID int, actor string) {
	account, ok := s.chooseAccount(userID)
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Type in the amount to deposit/withdraw")
	if !ok {
		return
	}

	status, err := s.accounts.Deposit(account.ID, amount)
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		fmt.Fprintln(s.out, "Account not found.")
	case errors.Is(err, bank.ErrInvalidInput):
		fmt.Fprintln(s.out, err)
	case err != nil:
		fmt.Fprintln(s.out, "Could not make a deposit. Please try again.")
		s.audit(actor, "deposit", fmt.Sprintf("account_id=%d", account.ID), outcomeError)
	case status == store.StatusOK:
		fmt.Fprintln(s.out, "Deposit successfully completed")
		s.audit(actor, "deposit", fmt.Sprintf("account_id=%d amount=%s", account.ID, amount.StringFixed(2)), outcomeOK)
	default:
		fmt.Fprintln(s.out, "Could not make a deposit. Please try again.")
		s.audit(actor, "deposit", fmt.Sprintf("account_id=%d", account.ID), statusOutcome(status))
	}
}

func (s *Shell) withdraw(userID int, actor string) {
	account, ok := s.chooseAccount(userID)
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Type in the amount to deposit/withdraw")
	if !ok {
		return
	}

	status, err := s.accounts.Withdraw(account.ID, amount)
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		fmt.Fprintln(s.out, "Account not found.")
	case errors.Is(err, bank.ErrInvalidInput):
		fmt.Fprintln(s.out, err)
	case errors.Is(err, bank.ErrOverdraft):
		fmt.Fprintln(s.out, "Insufficient funds to make the withdrawal.")
		s.audit(actor, "withdraw", fmt.Sprintf("account_id=%d amount=%s", account.ID, amount.StringFixed(2)), outcomeRejected)
	case err != nil:
		fmt.Fprintln(s.out, "Error while making a withdrawal. Please try again.")
		s.audit(actor, "withdraw", fmt.Sprintf("account_id=%d", account.ID), outcomeError)
	case status == store.StatusOK:
		fmt.Fprintln(s.out, "Withdrawal successfully completed")
		s.audit(actor, "withdraw", fmt.Sprintf("account_id=%d amount=%s", account.ID, amount.StringFixed(2)), outcomeOK)
	default:
		fmt.Fprintln(s.out, "Withdrawal failed")
		s.audit(actor, "withdraw", fmt.Sprintf("account_id=%d", account.ID), statusOutcome(status))
	}
}

func (s *Shell) viewTransactions(userID int) {
	txns, err := s.transactions.AllByUser(userID)
	if err != nil {
		fmt.Fprintln(s.out, "Error while getting transactions.")
		return
	}
	if len(txns) == 0 {
		fmt.Fprintln(s.out, "No transactions.")
		return
	}
	for _, txn := range txns {
		fmt.Fprintln(s.out, txn.String())
	}
}

func (s *Shell) changePassword(userID int, actor string) {
	fmt.Fprintln(s.out, "Enter a password (must contain no whitespace, between 8 and 50 characters):")
	password, ok := s.readLine()
	if !ok {
		return
	}

	status, err := s.users.UpdatePassword(userID, password)
	switch {
	case errors.Is(err, users.ErrInvalidInput), errors.Is(err, users.ErrUserNotFound):
		fmt.Fprintln(s.out, err)
	case err != nil:
		fmt.Fprintln(s.out, "Error while trying to change password. Please try again.")
	case status == store.StatusOK:
		fmt.Fprintln(s.out, "Password successfully changed.")
		s.audit(actor, "change-password", "", outcomeOK)
	default:
		fmt.Fprintln(s.out, "Error while trying to change password. Please try again.")
	}
}

// chooseAccount lists the user's accounts and reads a numeric selection.
// The false return covers "no accounts", "invalid selection", and EOF, each
// already reported to the user.
func (s *Shell) chooseAccount(userID int) (model.Account, bool) {
	accounts, err := s.accounts.AccountsByUser(userID)
	if err != nil {
		fmt.Fprintln(s.out, "Error while getting accounts.")
		return model.Account{}, false
	}
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No existing accounts.")
		return model.Account{}, false
	}

	index := selectItem(s, accounts, "account")
	if index == -1 {
		fmt.Fprintln(s.out, "Invalid account selection.")
		return model.Account{}, false
	}
	return accounts[index-1], true
}
