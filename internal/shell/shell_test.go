package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/auditlog"
	"github.com/tellerdesk-dev/tellerdesk/internal/bank"
	"github.com/tellerdesk-dev/tellerdesk/internal/config"
	"github.com/tellerdesk-dev/tellerdesk/internal/store/csvstore"
	"github.com/tellerdesk-dev/tellerdesk/internal/transactions"
	"github.com/tellerdesk-dev/tellerdesk/internal/users"
)

// runSession scripts one interactive session against a fresh file-backed
// store and returns the transcript and the data directory.
func runSession(t *testing.T, lines ...string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	st := csvstore.New(dir, zap.NewNop())
	require.NoError(t, st.Init())

	var out bytes.Buffer
	sh := New(Params{
		In:           strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:          &out,
		Users:        users.NewService(st, zap.NewNop()),
		Accounts:     bank.NewService(st, zap.NewNop()),
		Transactions: transactions.NewService(st, zap.NewNop()),
		Superuser:    config.SuperuserConfig{Username: "admin", Password: "adminpass123"},
		DataDir:      dir,
		Log:          zap.NewNop(),
	})
	require.NoError(t, sh.Run())
	return out.String(), dir
}

func TestRun_Exit(t *testing.T) {
	out, _ := runSession(t, "Exit")
	assert.Contains(t, out, "1. REGISTER as a user")
	assert.Contains(t, out, "4. EXIT the program")
	assert.Contains(t, out, "Exiting the application.")
}

func TestRun_InvalidSelection(t *testing.T) {
	out, _ := runSession(t, "bogus", "Exit")
	assert.Contains(t, out, "Invalid selection.")
}

func TestRun_EOFEndsSession(t *testing.T) {
	out, _ := runSession(t, "")
	assert.NotContains(t, out, "Exiting the application.")
}

func TestRegisterAndCreateAccount(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Create",
		"Checking", "10.00",
		"View",
		"Logout",
		"Exit",
	)

	assert.Contains(t, out, "Welcome, alice")
	assert.Contains(t, out, "Account successfully created")
	assert.Contains(t, out, "Checking 10.00")
	assert.Contains(t, out, "Logging out.")
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "short",
		"Exit",
	)

	assert.Contains(t, out, "password must be between 8 and 50 characters")
	assert.NotContains(t, out, "Welcome, alice")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	out, _ := runSession(t,
		"User",
		"nobody", "wrong-password",
		"Exit",
	)
	assert.Contains(t, out, "Invalid username or password.")
}

func TestLoginAfterRegister(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Logout",
		"User",
		"alice", "correct-horse",
		"Logout",
		"Exit",
	)
	assert.Equal(t, 2, strings.Count(out, "Welcome, alice"))
}

func TestDepositWithdrawLifecycle(t *testing.T) {
	out, dir := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Create",
		"Checking", "10.00",
		"Deposit",
		"1", "5.25",
		"Withdraw",
		"1", "20.00",
		"Withdraw",
		"1", "15.25",
		"Delete",
		"1",
		"Logout",
		"Exit",
	)

	assert.Contains(t, out, "Deposit successfully completed")
	assert.Contains(t, out, "Insufficient funds to make the withdrawal.")
	assert.Contains(t, out, "Withdrawal successfully completed")
	assert.Contains(t, out, "Account successfully deleted")

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)

	var actions []string
	for _, e := range entries {
		actions = append(actions, e.Action+":"+e.Outcome)
	}
	assert.Contains(t, actions, "register:ok")
	assert.Contains(t, actions, "create-account:ok")
	assert.Contains(t, actions, "deposit:ok")
	assert.Contains(t, actions, "withdraw:rejected")
	assert.Contains(t, actions, "withdraw:ok")
	assert.Contains(t, actions, "delete-account:ok")
}

func TestDeleteNonEmptyAccountRefused(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Create",
		"Checking", "10.00",
		"Delete",
		"1",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "Given account is not empty.")
}

func TestAmbiguousMenuInput(t *testing.T) {
	// "De" prefixes both DELETE and DEPOSIT in the user menu.
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"De",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "Invalid menu selection.")
}

func TestTransactionHistory(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Transaction",
		"Create",
		"Checking", "0.00",
		"Deposit",
		"1", "2.50",
		"Transaction",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "No transactions.")
	assert.Contains(t, out, "deposit 2.50")
}

func TestChangePassword(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Change",
		"new-password",
		"Logout",
		"User",
		"alice", "new-password",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "Password successfully changed.")
	assert.Equal(t, 2, strings.Count(out, "Welcome, alice"))
}

func TestSuperuserSession(t *testing.T) {
	out, _ := runSession(t,
		"Superuser",
		"admin", "adminpass123",
		"View",
		"Create",
		"bob", "battery-staple",
		"View",
		"Update",
		"1", "fresh-password",
		"Delete",
		"1",
		"View",
		"Logout",
		"Exit",
	)

	assert.Contains(t, out, "No existing users.")
	assert.Contains(t, out, "The user was successfully created.")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "Password successfully changed.")
	assert.Contains(t, out, "User successfully deleted.")
}

func TestSuperuser_BadCredentials(t *testing.T) {
	out, _ := runSession(t,
		"Superuser",
		"admin", "wrong",
		"Exit",
	)
	assert.Contains(t, out, "Invalid username or password.")
	assert.NotContains(t, out, "View all users")
}

func TestNumericMenuSelection(t *testing.T) {
	out, _ := runSession(t, "4")
	assert.Contains(t, out, "Exiting the application.")
}

func TestInvalidAccountSelection(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Create",
		"Checking", "10.00",
		"Deposit",
		"5",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "Invalid account selection.")
}

func TestDepositWithNoAccounts(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Deposit",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "No existing accounts.")
}

func TestCreateAccount_BadNumber(t *testing.T) {
	out, _ := runSession(t,
		"Register",
		"alice", "correct-horse",
		"Create",
		"Checking", "ten dollars",
		"Logout",
		"Exit",
	)
	assert.Contains(t, out, "The given input was not a valid number.")
}
