package user_service

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

func newTestService() (*UserService, *memstore.Store) {
	store := memstore.NewStore()
	return NewUserService(store, testLogger()), store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), RegisterParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Role != RoleUser {
		t.Errorf("role = %q, want %q", registered.Role, RoleUser)
	}
	if registered.HashedPassword == "super-secret" {
		t.Errorf("password stored in plain text")
	}

	authed, err := svc.Authenticate(context.Background(), "ada@example.com", "super-secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != registered.ID {
		t.Errorf("authenticated id = %d, want %d", authed.ID, registered.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "super-secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	params := RegisterParams{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "super-secret",
	}
	if _, err := svc.Register(context.Background(), params); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), params); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("duplicate register: err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), RegisterParams{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := svc.GetProfile(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != "ada@example.com" {
		t.Errorf("email = %q", profile.Email)
	}

	if _, err := svc.GetProfile(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing profile: err = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, store := newTestService()

	registered, err := svc.Register(context.Background(), RegisterParams{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	owned, err := store.CreateWallet(context.Background(), db.CreateWalletParams{
		UserID: registered.ID, Name: "Checking", Currency: "EUR", InitialBalance: 0,
	})
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	tx, err := store.CreateTransaction(context.Background(), db.CreateTransactionParams{
		WalletID: owned.ID, Description: "rent", Amount: 500,
		Type: db.TransactionExpense, OccurredAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), registered.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := store.GetUserByID(context.Background(), registered.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("user still readable: %v", err)
	}
	if _, err := store.GetWallet(context.Background(), owned.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("wallet survived account delete: %v", err)
	}
	if _, err := store.GetTransaction(context.Background(), tx.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("transaction survived account delete: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), registered.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second delete: err = %v, want ErrUserNotFound", err)
	}
}
