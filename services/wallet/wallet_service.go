package wallet

import (
	"context"
	"errors"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
)

type WalletService struct {
	store  db.Store
	logger *logging.Logger
}

func NewWalletService(store db.Store, logger *logging.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

func (w *WalletService) CreateWallet(ctx context.Context, userID int64, name, currency string, initialBalance int64) (db.Wallet, error) {
	created, err := w.store.CreateWallet(ctx, db.CreateWalletParams{
		UserID:         userID,
		Name:           name,
		Currency:       currency,
		InitialBalance: initialBalance,
	})
	if errors.Is(err, db.ErrNotFound) {
		return db.Wallet{}, ErrWalletNotPossible
	} else if err != nil {
		return db.Wallet{}, err
	}

	w.logger.WithField("wallet_id", created.ID).Info("wallet created")
	return created, nil
}

// GetOwnedWallet fetches a wallet and enforces ownership. A wallet owned by
// another user surfaces as ErrNotYours, never as someone else's data.
func (w *WalletService) GetOwnedWallet(ctx context.Context, userID, walletID int64) (db.Wallet, error) {
	found, err := w.store.GetWallet(ctx, walletID)
	if errors.Is(err, db.ErrNotFound) {
		return db.Wallet{}, ErrWalletNotFound
	} else if err != nil {
		return db.Wallet{}, err
	}
	if found.UserID != userID {
		return db.Wallet{}, ErrNotYours
	}
	return found, nil
}

// DeleteWallet removes the wallet and cascades to its transaction log.
func (w *WalletService) DeleteWallet(ctx context.Context, userID, walletID int64) error {
	if _, err := w.GetOwnedWallet(ctx, userID, walletID); err != nil {
		return err
	}
	if err := w.store.DeleteWallet(ctx, walletID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrWalletNotFound
		}
		return err
	}

	w.logger.WithField("wallet_id", walletID).Info("wallet deleted with transactions")
	return nil
}

// CurrentBalance derives the wallet's balance over its entire transaction
// log: initial balance + income sum - expense sum. An empty log yields the
// initial balance.
func (w *WalletService) CurrentBalance(ctx context.Context, walletID int64) (int64, error) {
	found, err := w.store.GetWallet(ctx, walletID)
	if errors.Is(err, db.ErrNotFound) {
		return 0, ErrWalletNotFound
	} else if err != nil {
		return 0, err
	}

	sums, err := w.store.WalletBalanceSums(ctx, walletID)
	if err != nil {
		return 0, err
	}
	return found.InitialBalance + sums.Income - sums.Expense, nil
}

// AllCurrentBalances computes the balance of every wallet owned by the user
// in one batched pass. Results are identical to calling CurrentBalance per
// wallet; wallets without transactions report their initial balance.
func (w *WalletService) AllCurrentBalances(ctx context.Context, userID int64) (map[int64]int64, error) {
	wallets, err := w.store.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sums, err := w.store.BalanceSumsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := make(map[int64]int64, len(wallets))
	for _, owned := range wallets {
		s := sums[owned.ID]
		balances[owned.ID] = owned.InitialBalance + s.Income - s.Expense
	}
	return balances, nil
}

// ListWithBalances returns every wallet owned by the user with its derived
// balance attached. Total coverage: a wallet never goes missing because it
// has no transactions.
func (w *WalletService) ListWithBalances(ctx context.Context, userID int64) ([]WalletWithBalance, error) {
	wallets, err := w.store.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sums, err := w.store.BalanceSumsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]WalletWithBalance, len(wallets))
	for i, owned := range wallets {
		s := sums[owned.ID]
		result[i] = WalletWithBalance{
			Wallet:  owned,
			Balance: owned.InitialBalance + s.Income - s.Expense,
		}
	}
	return result, nil
}
