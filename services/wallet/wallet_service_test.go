package wallet

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/db/memstore"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
)

func testLogger() *logging.Logger {
	logger := logging.NewLogger(nil)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(t *testing.T) (*WalletService, *memstore.Store, db.User) {
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
	return NewWalletService(store, testLogger()), store, user
}

func addTransaction(t *testing.T, store *memstore.Store, walletID, amount int64, txType db.TransactionType) {
	t.Helper()
	_, err := store.CreateTransaction(context.Background(), db.CreateTransactionParams{
		WalletID:    walletID,
		Description: "seed",
		Amount:      amount,
		Type:        txType,
		OccurredAt:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func TestCurrentBalanceDerivation(t *testing.T) {
	svc, store, user := newTestService(t)

	created, err := svc.CreateWallet(context.Background(), user.ID, "Checking", "EUR", 1000)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	// empty log: balance is the initial balance
	balance, err := svc.CurrentBalance(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 1000 {
		t.Errorf("empty-log balance = %d, want 1000", balance)
	}

	addTransaction(t, store, created.ID, 5000, db.TransactionIncome)
	addTransaction(t, store, created.ID, 1200, db.TransactionExpense)
	addTransaction(t, store, created.ID, 300, db.TransactionExpense)

	balance, err = svc.CurrentBalance(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if want := int64(1000 + 5000 - 1200 - 300); balance != want {
		t.Errorf("balance = %d, want %d", balance, want)
	}

	// reading the balance does not change it
	again, err := svc.CurrentBalance(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("balance again: %v", err)
	}
	if again != balance {
		t.Errorf("repeated read = %d, want %d", again, balance)
	}
}

func TestCurrentBalanceCanGoNegative(t *testing.T) {
	svc, store, user := newTestService(t)

	created, err := svc.CreateWallet(context.Background(), user.ID, "Checking", "EUR", 100)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	addTransaction(t, store, created.ID, 500, db.TransactionExpense)

	balance, err := svc.CurrentBalance(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != -400 {
		t.Errorf("balance = %d, want -400", balance)
	}
}

func TestCurrentBalanceWalletNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CurrentBalance(context.Background(), 42)
	if !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestAllCurrentBalancesMatchesPerWalletReads(t *testing.T) {
	svc, store, user := newTestService(t)

	active, err := svc.CreateWallet(context.Background(), user.ID, "Checking", "EUR", 1000)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	idle, err := svc.CreateWallet(context.Background(), user.ID, "Savings", "EUR", 7500)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	addTransaction(t, store, active.ID, 5000, db.TransactionIncome)
	addTransaction(t, store, active.ID, 1200, db.TransactionExpense)

	balances, err := svc.AllCurrentBalances(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("all balances: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("len(balances) = %d, want 2", len(balances))
	}

	for _, walletID := range []int64{active.ID, idle.ID} {
		single, err := svc.CurrentBalance(context.Background(), walletID)
		if err != nil {
			t.Fatalf("balance %d: %v", walletID, err)
		}
		if balances[walletID] != single {
			t.Errorf("batched balance for %d = %d, per-wallet read = %d", walletID, balances[walletID], single)
		}
	}
	if balances[idle.ID] != 7500 {
		t.Errorf("idle wallet balance = %d, want initial 7500", balances[idle.ID])
	}
}

func TestGetOwnedWalletOwnership(t *testing.T) {
	svc, store, user := newTestService(t)

	other, err := store.CreateUser(context.Background(), db.CreateUserParams{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
		HashedPassword: "hash", Role: "user",
	})
	if err != nil {
		t.Fatalf("seed other user: %v", err)
	}
	theirs, err := svc.CreateWallet(context.Background(), other.ID, "Theirs", "USD", 0)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	if _, err := svc.GetOwnedWallet(context.Background(), user.ID, theirs.ID); !errors.Is(err, ErrNotYours) {
		t.Errorf("expected ErrNotYours, got %v", err)
	}
	if _, err := svc.GetOwnedWallet(context.Background(), user.ID, 999); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestDeleteWalletRemovesLog(t *testing.T) {
	svc, store, user := newTestService(t)

	created, err := svc.CreateWallet(context.Background(), user.ID, "Checking", "EUR", 0)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	addTransaction(t, store, created.ID, 500, db.TransactionExpense)

	if err := svc.DeleteWallet(context.Background(), user.ID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteWallet(context.Background(), user.ID, created.ID); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("second delete: expected ErrWalletNotFound, got %v", err)
	}

	_, total, err := store.ListTransactionsByWallet(context.Background(), created.ID, db.TransactionFilter{}, db.Pagination{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("transactions left after cascade = %d, want 0", total)
	}
}

func TestListWithBalancesCoversEveryWallet(t *testing.T) {
	svc, store, user := newTestService(t)

	first, err := svc.CreateWallet(context.Background(), user.ID, "Checking", "EUR", 100)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if _, err := svc.CreateWallet(context.Background(), user.ID, "Savings", "EUR", 200); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	addTransaction(t, store, first.ID, 50, db.TransactionIncome)

	wallets, err := svc.ListWithBalances(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list with balances: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("len(wallets) = %d, want 2", len(wallets))
	}
	for _, entry := range wallets {
		want := entry.InitialBalance
		if entry.ID == first.ID {
			want += 50
		}
		if entry.Balance != want {
			t.Errorf("wallet %d balance = %d, want %d", entry.ID, entry.Balance, want)
		}
	}
}
