package shell

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
	"github.com/tellerdesk-dev/tellerdesk/internal/users"
)

// superuserSession drives the privileged user-management menu until logout.
func (s *Shell) superuserSession() {
	superMenu, err := buildMenu([][2]string{
		{"View all users", "View"},
		{"Create a user", "Create"},
		{"Update a user's password", "Update"},
		{"Delete a user", "Delete"},
		{"View the transaction log", "Transaction"},
		{"Logout", "Logout"},
	})
	if err != nil {
		s.log.Error("building superuser menu", zap.Error(err))
		return
	}

	actor := s.superuser.Username

	for {
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, superMenu.String())
		fmt.Fprintln(s.out, "Select an option.")

		input, ok := s.readLine()
		if !ok {
			return
		}

		switch superMenu.Select(input) {
		case 1:
			s.viewUsers()
		case 2:
			s.createUser(actor)
		case 3:
			s.updateUserPassword(actor)
		case 4:
			s.deleteUser(actor)
		case 5:
			s.viewAllTransactions()
		case 6:
			fmt.Fprintln(s.out, "Logging out.")
			return
		default:
			fmt.Fprintln(s.out, "Invalid selection.")
		}

		if s.eof {
			return
		}
	}
}

func (s *Shell) viewUsers() {
	all, err := s.users.Users()
	if err != nil {
		fmt.Fprintln(s.out, "Error occurred while getting users. Please try again.")
		return
	}
	if len(all) == 0 {
		fmt.Fprintln(s.out, "No existing users.")
		return
	}
	for _, user := range all {
		fmt.Fprintln(s.out, user.String())
	}
}

func (s *Shell) createUser(actor string) {
	username, password, ok := s.promptCredentials()
	if !ok {
		return
	}

	userID, err := s.users.Create(username, password)
	switch {
	case errors.Is(err, users.ErrUserExists), errors.Is(err, users.ErrInvalidInput):
		fmt.Fprintln(s.out, err)
		s.audit(actor, "create-user", "username="+username, outcomeRejected)
	case err != nil:
		fmt.Fprintln(s.out, "Error while creating user. Please try again.")
		s.audit(actor, "create-user", "username="+username, outcomeError)
	default:
		fmt.Fprintln(s.out, "The user was successfully created.")
		s.audit(actor, "create-user", fmt.Sprintf("username=%s user_id=%d", username, userID), outcomeOK)
	}
}

func (s *Shell) updateUserPassword(actor string) {
	user, ok := s.chooseUser()
	if !ok {
		return
	}

	fmt.Fprintln(s.out, "Enter a password (must contain no whitespace, between 8 and 50 characters):")
	password, ok := s.readLine()
	if !ok {
		return
	}

	status, err := s.users.UpdatePassword(user.ID, password)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		fmt.Fprintln(s.out, "User not found.")
	case errors.Is(err, users.ErrInvalidInput):
		fmt.Fprintln(s.out, err)
	case err != nil:
		fmt.Fprintln(s.out, "Error while trying to change password. Please try again.")
		s.audit(actor, "update-user-password", fmt.Sprintf("user_id=%d", user.ID), outcomeError)
	case status == store.StatusOK:
		fmt.Fprintln(s.out, "Password successfully changed.")
		s.audit(actor, "update-user-password", fmt.Sprintf("user_id=%d", user.ID), outcomeOK)
	default:
		fmt.Fprintln(s.out, "Error while trying to change password. Please try again.")
		s.audit(actor, "update-user-password", fmt.Sprintf("user_id=%d", user.ID), statusOutcome(status))
	}
}

func (s *Shell) deleteUser(actor string) {
	user, ok := s.chooseUser()
	if !ok {
		return
	}

	status, err := s.users.Delete(user.ID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		fmt.Fprintln(s.out, "User not found.")
	case err != nil:
		fmt.Fprintln(s.out, "Error while trying to delete user. Please try again.")
		s.audit(actor, "delete-user", fmt.Sprintf("user_id=%d", user.ID), outcomeError)
	case status == store.StatusOK:
		fmt.Fprintln(s.out, "User successfully deleted.")
		s.audit(actor, "delete-user", fmt.Sprintf("user_id=%d", user.ID), outcomeOK)
	default:
		fmt.Fprintln(s.out, "User deletion failed.")
		s.audit(actor, "delete-user", fmt.Sprintf("user_id=%d", user.ID), statusOutcome(status))
	}
}

func (s *Shell) viewAllTransactions() {
	txns, err := s.transactions.All()
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

func (s *Shell) chooseUser() (model.User, bool) {
	all, err := s.users.Users()
	if err != nil {
		fmt.Fprintln(s.out, "Error occurred while getting users. Please try again.")
		return model.User{}, false
	}
	if len(all) == 0 {
		fmt.Fprintln(s.out, "No existing users.")
		return model.User{}, false
	}

	index := selectItem(s, all, "user")
	if index == -1 {
		fmt.Fprintln(s.out, "Invalid user selection.")
		return model.User{}, false
	}
	return all[index-1], true
}
