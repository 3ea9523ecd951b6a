// Package csvstore is a file-backed implementation of the store contract:
// users.csv and accounts.csv are rewritten per mutation, transactions.csv is
// append-only. Good enough for one interactive session per process, which is
// all the application serves.
package csvstore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tellerdesk-dev/tellerdesk/internal/store"
)

const (
	usersFile        = "users.csv"
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
)

// Store persists users, accounts, and transactions as CSV files under a
// single data directory.
type Store struct {
	dir string
	log *zap.Logger
}

// New creates a Store rooted at dir. Call Init to create the files.
func New(dir string, log *zap.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Init creates the data directory and any missing CSV files with their
// headers. Existing files are left alone.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	headers := map[string]string{
		usersFile:        usersHeader,
		accountsFile:     accountsHeader,
		transactionsFile: transactionsHeader,
	}
	for name, header := range headers {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(header+"\n"), 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// unavailable wraps an underlying failure as an infrastructure error.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
}
