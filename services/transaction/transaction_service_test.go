package transaction

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/db/memstore"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
	"github.com/CoinKeep/CoinKeep-Backend/services/wallet"
)

func testLogger() *logging.Logger {
	logger := logging.NewLogger(nil)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(t *testing.T) (*TransactionService, *memstore.Store, db.User, db.Wallet) {
	t.Helper()
	store := memstore.NewStore()
	user, err := store.CreateUser(context.Background(), db.CreateUserParams{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		HashedPassword: "hash",
		Role:           "user",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	owned, err := store.CreateWallet(context.Background(), db.CreateWalletParams{
		UserID:         user.ID,
		Name:           "Checking",
		Currency:       "EUR",
		InitialBalance: 0,
	})
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	logger := testLogger()
	svc := NewTransactionService(store, wallet.NewWalletService(store, logger), logger)
	return svc, store, user, owned
}

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestAddValidation(t *testing.T) {
	svc, _, user, owned := newTestService(t)

	cases := []struct {
		name   string
		amount int64
		txType db.TransactionType
		want   error
	}{
		{"zero amount", 0, db.TransactionExpense, ErrInvalidAmount},
		{"negative amount", -100, db.TransactionIncome, ErrInvalidAmount},
		{"unknown type", 100, db.TransactionType("transfer"), ErrInvalidType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), user.ID, owned.ID, "bad", march(1), tc.amount, tc.txType)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAddOwnership(t *testing.T) {
	svc, store, user, _ := newTestService(t)

	other, err := store.CreateUser(context.Background(), db.CreateUserParams{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
		HashedPassword: "hash", Role: "user",
	})
	if err != nil {
		t.Fatalf("seed other user: %v", err)
	}
	theirs, err := store.CreateWallet(context.Background(), db.CreateWalletParams{
		UserID: other.ID, Name: "Theirs", Currency: "USD", InitialBalance: 0,
	})
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	_, err = svc.Add(context.Background(), user.ID, theirs.ID, "sneaky", march(1), 100, db.TransactionExpense)
	if !errors.Is(err, wallet.ErrNotYours) {
		t.Fatalf("err = %v, want wallet.ErrNotYours", err)
	}

	_, err = svc.Add(context.Background(), user.ID, 999, "nowhere", march(1), 100, db.TransactionExpense)
	if !errors.Is(err, wallet.ErrWalletNotFound) {
		t.Fatalf("err = %v, want wallet.ErrWalletNotFound", err)
	}
}

func TestAddAndGetRoundTrip(t *testing.T) {
	svc, _, user, owned := newTestService(t)

	created, err := svc.Add(context.Background(), user.ID, owned.ID, "groceries", march(10), 1500, db.TransactionExpense)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == 0 {
		t.Errorf("created.ID = 0, want assigned id")
	}

	found, err := svc.Get(context.Background(), user.ID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.Description != "groceries" || found.Amount != 1500 || found.Type != db.TransactionExpense {
		t.Errorf("found = %+v", found)
	}
}

func TestGetHidesOtherUsersTransactions(t *testing.T) {
	svc, store, user, _ := newTestService(t)

	other, err := store.CreateUser(context.Background(), db.CreateUserParams{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
		HashedPassword: "hash", Role: "user",
	})
	if err != nil {
		t.Fatalf("seed other user: %v", err)
	}
	theirs, err := store.CreateWallet(context.Background(), db.CreateWalletParams{
		UserID: other.ID, Name: "Theirs", Currency: "USD", InitialBalance: 0,
	})
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	tx, err := store.CreateTransaction(context.Background(), db.CreateTransactionParams{
		WalletID: theirs.ID, Description: "private", Amount: 100,
		Type: db.TransactionExpense, OccurredAt: march(1),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	// someone else's record reads exactly like a missing one
	_, err = svc.Get(context.Background(), user.ID, tx.ID)
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("err = %v, want ErrTransactionNotFound", err)
	}
}

func TestListPaginatesThroughOwnedWallet(t *testing.T) {
	svc, _, user, owned := newTestService(t)

	for i := 0; i < 12; i++ {
		if _, err := svc.Add(context.Background(), user.ID, owned.ID, "spend", march(1+i), int64(100+i), db.TransactionExpense); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), user.ID, owned.ID, db.TransactionFilter{}, db.Pagination{Page: 2, PageSize: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}
	if len(items) != 5 {
		t.Errorf("len(items) = %d, want 5", len(items))
	}
}

func TestGroupedByMonthDelegatesWithOwnershipGate(t *testing.T) {
	svc, _, user, owned := newTestService(t)

	if _, err := svc.Add(context.Background(), user.ID, owned.ID, "salary", march(1), 2000, db.TransactionIncome); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(context.Background(), user.ID, owned.ID, "rent", march(2), 500, db.TransactionExpense); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := svc.GroupedByMonth(context.Background(), user.ID, owned.ID, 2024, time.March)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Type != db.TransactionIncome {
		t.Errorf("income block should lead, got %s", items[0].Type)
	}

	if _, err := svc.GroupedByMonth(context.Background(), user.ID, 999, 2024, time.March); !errors.Is(err, wallet.ErrWalletNotFound) {
		t.Errorf("err = %v, want wallet.ErrWalletNotFound", err)
	}
}
