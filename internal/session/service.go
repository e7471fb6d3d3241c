package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tally-dev/tally/internal/model"
)

const (
	transactionsFile = "transactions.csv"
	ordersFile       = "amazon_orders.csv"
)

// Service provides whole-file access to the session state under a data
// directory. Every read fully consumes a file and every write replaces or
// appends whole rows; there are no streaming contracts.
type Service struct {
	dataDir string
}

// NewService creates a session Service rooted at dataDir.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir}
}

// ReadTransactions returns the accumulated transaction set. A missing file
// means an empty session.
func (s *Service) ReadTransactions() ([]model.Transaction, error) {
	path := filepath.Join(s.dataDir, transactionsFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return txns, nil
}

// AppendTransactions adds transactions to the session, creating the file
// and header on first use.
func (s *Service) AppendTransactions(txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(s.dataDir, transactionsFile)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, TransactionHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, txns); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	return nil
}

// WriteTransactions replaces the whole session transaction set, used after
// bulk category edits.
func (s *Service) WriteTransactions(txns []model.Transaction) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(s.dataDir, transactionsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	return nil
}

// ReadOrders returns the loaded order pool and the already-consumed ids.
// A missing file means no pool is loaded.
func (s *Service) ReadOrders() ([]model.AmazonOrder, []int, error) {
	path := filepath.Join(s.dataDir, ordersFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	orders, consumed, err := ReadOrders(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return orders, consumed, nil
}

// WriteOrders replaces the order pool. A fresh pool starts with an empty
// consumed set; reconciliation progress is saved by passing the current
// consumed ids.
func (s *Service) WriteOrders(orders []model.AmazonOrder, matched map[int]bool) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(s.dataDir, ordersFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteOrders(f, orders, matched); err != nil {
		return fmt.Errorf("writing orders: %w", err)
	}
	return nil
}
