// Package shell is the interactive console front end: it renders menus,
// resolves keystrokes through the menu engine, and drives the validation
// services. All I/O goes through the injected reader and writer so sessions
// can be scripted in tests.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/auditlog"
	"github.com/tellerdesk-dev/tellerdesk/internal/bank"
	"github.com/tellerdesk-dev/tellerdesk/internal/config"
	"github.com/tellerdesk-dev/tellerdesk/internal/menu"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
	"github.com/tellerdesk-dev/tellerdesk/internal/transactions"
	"github.com/tellerdesk-dev/tellerdesk/internal/users"
)

// Params holds everything a Shell needs.
type Params struct {
	In           io.Reader
	Out          io.Writer
	Users        *users.Service
	Accounts     *bank.Service
	Transactions *transactions.Service
	Superuser    config.SuperuserConfig
	DataDir      string // audit log location; empty disables auditing
	Log          *zap.Logger
}

// Shell runs one interactive session.
type Shell struct {
	in           *bufio.Scanner
	out          io.Writer
	users        *users.Service
	accounts     *bank.Service
	transactions *transactions.Service
	superuser    config.SuperuserConfig
	dataDir      string
	log          *zap.Logger
	eof          bool
}

// New creates a Shell.
func New(p Params) *Shell {
	return &Shell{
		in:           bufio.NewScanner(p.In),
		out:          p.Out,
		users:        p.Users,
		accounts:     p.Accounts,
		transactions: p.Transactions,
		superuser:    p.Superuser,
		dataDir:      p.DataDir,
		log:          p.Log,
	}
}

// Run drives the login menu until the user exits or input runs out. Menu
// construction errors are programming mistakes in the static definitions
// and abort the session.
func (s *Shell) Run() error {
	loginMenu, err := buildMenu([][2]string{
		{"Register as a user", "Register"},
		{"Login as a user", "User"},
		{"Login as a superuser", "Superuser"},
		{"Exit the program", "Exit"},
	})
	if err != nil {
		return fmt.Errorf("building login menu: %w", err)
	}

	for {
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, loginMenu.String())
		fmt.Fprintln(s.out, "Select an option.")

		input, ok := s.readLine()
		if !ok {
			return nil
		}

		switch loginMenu.Select(input) {
		case 1:
			s.register()
		case 2:
			s.login()
		case 3:
			s.superuserLogin()
		case 4:
			fmt.Fprintln(s.out, "Exiting the application.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid selection.")
		}

		if s.eof {
			return nil
		}
	}
}

func (s *Shell) register() {
	username, password, ok := s.promptCredentials()
	if !ok {
		return
	}

	userID, err := s.users.Create(username, password)
	switch {
	case errors.Is(err, users.ErrUserExists), errors.Is(err, users.ErrInvalidInput):
		fmt.Fprintln(s.out, err)
		s.audit(username, "register", "", outcomeRejected)
	case err != nil:
		fmt.Fprintln(s.out, "Error while trying to create user. Please try again.")
		s.audit(username, "register", "", outcomeError)
	default:
		s.audit(username, "register", fmt.Sprintf("user_id=%d", userID), outcomeOK)
		s.userSession(userID)
	}
}

func (s *Shell) login() {
	username, password, ok := s.promptCredentials()
	if !ok {
		return
	}

	userID, err := s.users.Login(username, password)
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		fmt.Fprintln(s.out, "Invalid username or password.")
	case err != nil:
		fmt.Fprintln(s.out, "Could not login. Please try again.")
	default:
		s.userSession(userID)
	}
}

func (s *Shell) superuserLogin() {
	username, password, ok := s.promptCredentials()
	if !ok {
		return
	}

	if username != s.superuser.Username || password != s.superuser.Password {
		fmt.Fprintln(s.out, "Invalid username or password.")
		s.audit(username, "superuser-login", "", outcomeRejected)
		return
	}

	s.audit(s.superuser.Username, "superuser-login", "", outcomeOK)
	s.superuserSession()
}

func buildMenu(defs [][2]string) (*menu.Menu, error) {
	m := menu.New()
	for _, def := range defs {
		item, err := menu.NewItem(def[0], def[1])
		if err != nil {
			return nil, err
		}
		if err := m.Add(item); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (s *Shell) readLine() (string, bool) {
	if s.eof {
		return "", false
	}
	if !s.in.Scan() {
		s.eof = true
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) promptCredentials() (username, password string, ok bool) {
	fmt.Fprintln(s.out, "Enter a username (must contain no whitespace, non-empty, and less than 50 characters):")
	username, ok = s.readLine()
	if !ok {
		return "", "", false
	}
	fmt.Fprintln(s.out, "Enter a password (must contain no whitespace, between 8 and 50 characters):")
	password, ok = s.readLine()
	if !ok {
		return "", "", false
	}
	return username, password, true
}

// promptAmount asks for a monetary amount and parses it, reporting parse
// failures to the user.
func (s *Shell) promptAmount(prompt string) (decimal.Decimal, bool) {
	fmt.Fprintln(s.out, prompt)
	input, ok := s.readLine()
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(input)
	if err != nil {
		fmt.Fprintln(s.out, "The given input was not a valid number.")
		return decimal.Zero, false
	}
	return amount, true
}

// selectItem prints a numbered listing and reads a 1-based selection, or -1
// for anything out of range or non-numeric.
func selectItem[T fmt.Stringer](s *Shell, items []T, typeName string) int {
	for i, item := range items {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, item.String())
	}
	fmt.Fprintf(s.out, "Select the %s you want to modify.\n", typeName)

	input, ok := s.readLine()
	if !ok {
		return -1
	}

	selected, err := strconv.Atoi(input)
	if err != nil || selected <= 0 || selected > len(items) {
		return -1
	}
	return selected
}

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// audit appends one audit log entry; failures are logged, never surfaced to
// the user.
func (s *Shell) audit(actor, action, details, outcome string) {
	if s.dataDir == "" {
		return
	}
	entry := auditlog.Entry{
		Time:    time.Now(),
		Actor:   actor,
		Action:  action,
		Details: details,
		Outcome: outcome,
	}
	if err := auditlog.Append(s.dataDir, []auditlog.Entry{entry}); err != nil {
		s.log.Warn("failed to write audit log", zap.Error(err))
	}
}

// statusOutcome maps a store status to an audit outcome.
func statusOutcome(status store.Status) string {
	switch status {
	case store.StatusOK:
		return outcomeOK
	case store.StatusRejected:
		return outcomeRejected
	default:
		return outcomeError
	}
}
