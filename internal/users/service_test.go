package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/model"
	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	users   map[int]model.User
	nextID  int
	failing bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int]model.User)}
}

func (f *fakeUsers) err() error {
	if f.failing {
		return store.ErrUnavailable
	}
	return nil
}

func (f *fakeUsers) Users() ([]model.User, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	var all []model.User
	for _, u := range f.users {
		all = append(all, u)
	}
	return all, nil
}

func (f *fakeUsers) UserByID(id int) (model.User, bool, error) {
	if err := f.err(); err != nil {
		return model.User{}, false, err
	}
	u, ok := f.users[id]
	return u, ok, nil
}

func (f *fakeUsers) UserByUsername(username string) (model.User, bool, error) {
	if err := f.err(); err != nil {
		return model.User{}, false, err
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

func (f *fakeUsers) CreateUser(username, password string) (int, error) {
	if err := f.err(); err != nil {
		return 0, err
	}
	f.nextID++
	f.users[f.nextID] = model.User{ID: f.nextID, Username: username, Password: password}
	return f.nextID, nil
}

func (f *fakeUsers) DeleteUser(id int) (store.Status, error) {
	if err := f.err(); err != nil {
		return store.StatusFailed, err
	}
	if _, ok := f.users[id]; !ok {
		return store.StatusRejected, nil
	}
	delete(f.users, id)
	return store.StatusOK, nil
}

func (f *fakeUsers) UpdatePassword(id int, password string) (store.Status, error) {
	if err := f.err(); err != nil {
		return store.StatusFailed, err
	}
	u, ok := f.users[id]
	if !ok {
		return store.StatusRejected, nil
	}
	u.Password = password
	f.users[id] = u
	return store.StatusOK, nil
}

func (f *fakeUsers) Login(username, password string) (int, error) {
	if err := f.err(); err != nil {
		return store.LoginFailed, err
	}
	for _, u := range f.users {
		if u.Username == username && u.Password == password {
			return u.ID, nil
		}
	}
	return store.LoginFailed, nil
}

func newTestService() (*Service, *fakeUsers) {
	fake := newFakeUsers()
	return NewService(fake, zap.NewNop()), fake
}

func TestCreate_Valid(t *testing.T) {
	svc, fake := newTestService()

	id, err := svc.Create("alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "alice", fake.users[id].Username)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create("alice", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Create("alice", "battery-staple")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "longenough"},
		{"long username", strings.Repeat("a", 51), "longenough"},
		{"username whitespace", "al ice", "longenough"},
		{"short password", "alice", "short"},
		{"long password", "alice", strings.Repeat("p", 51)},
		{"password whitespace", "alice", "has a space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.username, tt.password)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.Create("alice", "correct-horse")
	require.NoError(t, err)

	got, err := svc.Login("alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = svc.Login("alice", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "correct-horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	svc, fake := newTestService()

	id, err := svc.Create("alice", "correct-horse")
	require.NoError(t, err)

	_, err = svc.UpdatePassword(99, "new-password")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.UpdatePassword(id, "short")
	require.ErrorIs(t, err, ErrInvalidInput)

	status, err := svc.UpdatePassword(id, "new-password")
	require.NoError(t, err)
	require.Equal(t, store.StatusOK, status)
	assert.Equal(t, "new-password", fake.users[id].Password)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.Create("alice", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Delete(99)
	require.ErrorIs(t, err, ErrUserNotFound)

	status, err := svc.Delete(id)
	require.NoError(t, err)
	assert.Equal(t, store.StatusOK, status)

	_, err = svc.Delete(id)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestInfrastructureErrorsSurface(t *testing.T) {
	svc, fake := newTestService()
	fake.failing = true

	_, err := svc.Create("alice", "correct-horse")
	require.ErrorIs(t, err, store.ErrUnavailable)

	_, err = svc.Login("alice", "correct-horse")
	require.ErrorIs(t, err, store.ErrUnavailable)

	_, err = svc.UpdatePassword(1, "new-password")
	require.ErrorIs(t, err, store.ErrUnavailable)

	_, err = svc.Delete(1)
	require.ErrorIs(t, err, store.ErrUnavailable)
}
