package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

const usersHeader = "user_id,username,password"

const (
	userFields  = 3
	colUserID   = 0
	colUsername = 1
	colPassword = 2
)

// MarshalUser converts a User to a CSV row.
func MarshalUser(u model.User) []string {
	row := make([]string, userFields)
	row[colUserID] = strconv.Itoa(u.ID)
	row[colUsername] = u.Username
	row[colPassword] = u.Password
	return row
}

// UnmarshalUser converts a CSV row to a User.
func UnmarshalUser(record []string) (model.User, error) {
	if len(record) != userFields {
		return model.User{}, fmt.Errorf("expected %d fields, got %d", userFields, len(record))
	}

	id, err := strconv.Atoi(record[colUserID])
	if err != nil {
		return model.User{}, fmt.Errorf("parsing user_id %q: %w", record[colUserID], err)
	}

	return model.User{
		ID:       id,
		Username: record[colUsername],
		Password: record[colPassword],
	}, nil
}

// ReadUsers reads users.csv rows (after the header).
func ReadUsers(r io.Reader) ([]model.User, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = userFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading users CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var users []model.User
	for i, rec := range records[1:] {
		u, err := UnmarshalUser(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// WriteUsers writes users.csv (header included).
func WriteUsers(w io.Writer, users []model.User) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(usersHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, u := range users {
		if err := cw.Write(MarshalUser(u)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func (s *Store) loadUsers() ([]model.User, error) {
	f, err := os.Open(s.path(usersFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("opening users", err)
	}
	defer f.Close()

	users, err := ReadUsers(f)
	if err != nil {
		return nil, unavailable("reading users", err)
	}
	return users, nil
}

func (s *Store) saveUsers(users []model.User) error {
	f, err := os.Create(s.path(usersFile))
	if err != nil {
		return unavailable("creating users file", err)
	}
	defer f.Close()

	if err := WriteUsers(f, users); err != nil {
		return unavailable("writing users", err)
	}
	return nil
}

// Users returns all users.
func (s *Store) Users() ([]model.User, error) {
	return s.loadUsers()
}

// UserByID returns the user with the given ID, if any.
func (s *Store) UserByID(id int) (model.User, bool, error) {
	users, err := s.loadUsers()
	if err != nil {
		return model.User{}, false, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

// UserByUsername returns the user with the given username, if any.
func (s *Store) UserByUsername(username string) (model.User, bool, error) {
	users, err := s.loadUsers()
	if err != nil {
		return model.User{}, false, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

// CreateUser appends a user with the next sequential ID and returns the ID.
func (s *Store) CreateUser(username, password string) (int, error) {
	users, err := s.loadUsers()
	if err != nil {
		return 0, err
	}

	id := 0
	for _, u := range users {
		if u.ID > id {
			id = u.ID
		}
	}
	id++

	users = append(users, model.User{ID: id, Username: username, Password: password})
	if err := s.saveUsers(users); err != nil {
		return 0, err
	}

	s.log.Debug("created user", zap.Int("user_id", id), zap.String("username", username))
	return id, nil
}

// DeleteUser removes a user and, like a cascading foreign key, the user's
// accounts and their transactions.
func (s *Store) DeleteUser(id int) (store.Status, error) {
	users, err := s.loadUsers()
	if err != nil {
		return store.StatusFailed, err
	}

	kept := users[:0]
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return store.StatusRejected, nil
	}

	accounts, err := s.loadAccounts()
	if err != nil {
		return store.StatusFailed, err
	}
	orphaned := make(map[int]bool)
	keptAccounts := accounts[:0]
	for _, a := range accounts {
		if a.UserID == id {
			orphaned[a.ID] = true
			continue
		}
		keptAccounts = append(keptAccounts, a)
	}

	if err := s.saveUsers(kept); err != nil {
		return store.StatusFailed, err
	}
	if len(orphaned) > 0 {
		if err := s.saveAccounts(keptAccounts); err != nil {
			return store.StatusFailed, err
		}
		if err := s.dropTransactions(orphaned); err != nil {
			return store.StatusFailed, err
		}
	}

	s.log.Debug("deleted user", zap.Int("user_id", id), zap.Int("accounts_removed", len(orphaned)))
	return store.StatusOK, nil
}

// UpdatePassword replaces a user's password.
func (s *Store) UpdatePassword(id int, password string) (store.Status, error) {
	users, err := s.loadUsers()
	if err != nil {
		return store.StatusFailed, err
	}

	found := false
	for i := range users {
		if users[i].ID == id {
			users[i].Password = password
			found = true
			break
		}
	}
	if !found {
		return store.StatusRejected, nil
	}

	if err := s.saveUsers(users); err != nil {
		return store.StatusFailed, err
	}

	s.log.Debug("updated password", zap.Int("user_id", id))
	return store.StatusOK, nil
}

// Login returns the ID of the user matching both credentials, or
// store.LoginFailed when none does.
func (s *Store) Login(username, password string) (int, error) {
	users, err := s.loadUsers()
	if err != nil {
		return store.LoginFailed, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u.ID, nil
		}
	}
	return store.LoginFailed, nil
}
