// Package memstore provides an in-memory db.Store with the same query and
// aggregation semantics as the Postgres store. It backs the test suite and
// the local development profile.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
)

type Store struct {
	mu sync.RWMutex

	users        map[int64]db.User
	wallets      map[int64]db.Wallet
	transactions map[int64]db.Transaction

	nextUserID        int64
	nextWalletID      int64
	nextTransactionID int64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]db.User),
		wallets:      make(map[int64]db.Wallet),
		transactions: make(map[int64]db.Transaction),
	}
}

func (s *Store) CreateUser(_ context.Context, arg db.CreateUserParams) (db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == arg.Email {
			return db.User{}, db.ErrAlreadyExists
		}
	}

	s.nextUserID++
	now := time.Now().UTC()
	u := db.User{
		ID:             s.nextUserID,
		FirstName:      arg.FirstName,
		LastName:       arg.LastName,
		Email:          arg.Email,
		HashedPassword: arg.HashedPassword,
		Role:           arg.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return db.User{}, db.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return db.User{}, db.ErrNotFound
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return db.ErrNotFound
	}
	for walletID, w := range s.wallets {
		if w.UserID == id {
			s.deleteWalletLocked(walletID)
		}
	}
	delete(s.users, id)
	return nil
}

func (s *Store) CreateWallet(_ context.Context, arg db.CreateWalletParams) (db.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[arg.UserID]; !ok {
		return db.Wallet{}, db.ErrNotFound
	}

	s.nextWalletID++
	now := time.Now().UTC()
	w := db.Wallet{
		ID:             s.nextWalletID,
		UserID:         arg.UserID,
		Name:           arg.Name,
		Currency:       arg.Currency,
		InitialBalance: arg.InitialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.wallets[w.ID] = w
	return w, nil
}

func (s *Store) GetWallet(_ context.Context, id int64) (db.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[id]
	if !ok {
		return db.Wallet{}, db.ErrNotFound
	}
	return w, nil
}

func (s *Store) ListWalletsByUser(_ context.Context, userID int64) ([]db.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := []db.Wallet{}
	for _, w := range s.wallets {
		if w.UserID == userID {
			wallets = append(wallets, w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
	return wallets, nil
}

func (s *Store) DeleteWallet(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wallets[id]; !ok {
		return db.ErrNotFound
	}
	s.deleteWalletLocked(id)
	return nil
}

// deleteWalletLocked cascades to the wallet's transactions. Callers hold mu.
func (s *Store) deleteWalletLocked(id int64) {
	for txID, t := range s.transactions {
		if t.WalletID == id {
			delete(s.transactions, txID)
		}
	}
	delete(s.wallets, id)
}

func (s *Store) CreateTransaction(_ context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wallets[arg.WalletID]; !ok {
		return db.Transaction{}, db.ErrNotFound
	}

	s.nextTransactionID++
	t := db.Transaction{
		ID:          s.nextTransactionID,
		WalletID:    arg.WalletID,
		Description: arg.Description,
		Amount:      arg.Amount,
		Type:        arg.Type,
		OccurredAt:  arg.OccurredAt,
		CreatedAt:   time.Now().UTC(),
	}
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (db.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return db.Transaction{}, db.ErrNotFound
	}
	return t, nil
}

func matches(t db.Transaction, f db.TransactionFilter) bool {
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.DescriptionContains != nil && !strings.Contains(t.Description, *f.DescriptionContains) {
		return false
	}
	if f.MinAmount != nil && t.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && t.Amount > *f.MaxAmount {
		return false
	}
	if f.From != nil && t.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.OccurredAt.Before(f.To.Add(24*time.Hour)) {
		return false
	}
	return true
}

func (s *Store) ListTransactionsByWallet(_ context.Context, walletID int64, filter db.TransactionFilter, page db.Pagination) ([]db.Transaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []db.Transaction{}
	for _, t := range s.transactions {
		if t.WalletID == walletID && matches(t, filter) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].OccurredAt.Equal(matched[j].OccurredAt) {
			return matched[i].OccurredAt.After(matched[j].OccurredAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	offset := page.Offset()
	if offset >= len(matched) {
		return []db.Transaction{}, total, nil
	}
	end := offset + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (s *Store) MonthTransactionsGrouped(_ context.Context, walletID int64, year int, month time.Month) ([]db.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := db.MonthRange(year, month)
	inMonth := []db.Transaction{}
	typeTotals := map[db.TransactionType]int64{}
	for _, t := range s.transactions {
		if t.WalletID == walletID && !t.OccurredAt.Before(start) && t.OccurredAt.Before(end) {
			inMonth = append(inMonth, t)
			typeTotals[t.Type] += t.Amount
		}
	}
	sort.Slice(inMonth, func(i, j int) bool {
		a, b := inMonth[i], inMonth[j]
		if a.Type != b.Type {
			if typeTotals[a.Type] != typeTotals[b.Type] {
				return typeTotals[a.Type] > typeTotals[b.Type]
			}
			return a.Type < b.Type
		}
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.Before(b.OccurredAt)
		}
		return a.ID < b.ID
	})
	return inMonth, nil
}

func (s *Store) WalletBalanceSums(_ context.Context, walletID int64) (db.BalanceSums, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sums db.BalanceSums
	for _, t := range s.transactions {
		if t.WalletID != walletID {
			continue
		}
		switch t.Type {
		case db.TransactionIncome:
			sums.Income += t.Amount
		case db.TransactionExpense:
			sums.Expense += t.Amount
		}
	}
	return sums, nil
}

func (s *Store) BalanceSumsByUser(_ context.Context, userID int64) (map[int64]db.BalanceSums, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[int64]db.BalanceSums)
	owned := make(map[int64]bool)
	for id, w := range s.wallets {
		if w.UserID == userID {
			owned[id] = true
			sums[id] = db.BalanceSums{}
		}
	}
	for _, t := range s.transactions {
		if !owned[t.WalletID] {
			continue
		}
		entry := sums[t.WalletID]
		switch t.Type {
		case db.TransactionIncome:
			entry.Income += t.Amount
		case db.TransactionExpense:
			entry.Expense += t.Amount
		}
		sums[t.WalletID] = entry
	}
	return sums, nil
}

func (s *Store) MonthSums(_ context.Context, walletID int64, year int, month time.Month) (db.BalanceSums, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := db.MonthRange(year, month)
	var sums db.BalanceSums
	for _, t := range s.transactions {
		if t.WalletID != walletID || t.OccurredAt.Before(start) || !t.OccurredAt.Before(end) {
			continue
		}
		switch t.Type {
		case db.TransactionIncome:
			sums.Income += t.Amount
		case db.TransactionExpense:
			sums.Expense += t.Amount
		}
	}
	return sums, nil
}

func (s *Store) TopExpensesByUser(_ context.Context, userID int64, year int, month time.Month, limit int) (map[int64][]db.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := db.MonthRange(year, month)
	perWallet := make(map[int64][]db.Transaction)
	for _, t := range s.transactions {
		if t.Type != db.TransactionExpense || t.OccurredAt.Before(start) || !t.OccurredAt.Before(end) {
			continue
		}
		w, ok := s.wallets[t.WalletID]
		if !ok || w.UserID != userID {
			continue
		}
		perWallet[t.WalletID] = append(perWallet[t.WalletID], t)
	}

	for walletID, items := range perWallet {
		sort.Slice(items, func(i, j int) bool {
			if items[i].Amount != items[j].Amount {
				return items[i].Amount > items[j].Amount
			}
			return items[i].ID < items[j].ID
		})
		if len(items) > limit {
			items = items[:limit]
		}
		perWallet[walletID] = items
	}
	return perWallet, nil
}
