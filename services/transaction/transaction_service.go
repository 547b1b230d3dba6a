package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
	"github.com/CoinKeep/CoinKeep-Backend/services/wallet"
)

// TransactionService is the write and read boundary for the append-only
// transaction log. Records are immutable once created; the only way a
// transaction disappears is the cascade of its wallet's deletion.
type TransactionService struct {
	store        db.Store
	walletClient *wallet.WalletService
	logger       *logging.Logger
}

func NewTransactionService(store db.Store, walletClient *wallet.WalletService, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		store:        store,
		walletClient: walletClient,
		logger:       logger,
	}
}

func (s *TransactionService) Add(ctx context.Context, userID, walletID int64, description string, occurredAt time.Time, amount int64, txType db.TransactionType) (db.Transaction, error) {
	if !txType.Valid() {
		return db.Transaction{}, ErrInvalidType
	}
	if amount <= 0 {
		return db.Transaction{}, ErrInvalidAmount
	}

	if _, err := s.walletClient.GetOwnedWallet(ctx, userID, walletID); err != nil {
		return db.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, db.CreateTransactionParams{
		WalletID:    walletID,
		Description: description,
		Amount:      amount,
		Type:        txType,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return db.Transaction{}, err
	}

	s.logger.WithField("transaction_id", created.ID).WithField("wallet_id", walletID).Info("transaction recorded")
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, transactionID int64) (db.Transaction, error) {
	found, err := s.store.GetTransaction(ctx, transactionID)
	if errors.Is(err, db.ErrNotFound) {
		return db.Transaction{}, ErrTransactionNotFound
	} else if err != nil {
		return db.Transaction{}, err
	}

	// the owning wallet decides visibility
	if _, err := s.walletClient.GetOwnedWallet(ctx, userID, found.WalletID); err != nil {
		return db.Transaction{}, ErrTransactionNotFound
	}
	return found, nil
}

// List returns one page of the wallet's transactions, newest first, plus the
// total match count. An empty page past the end is not an error.
func (s *TransactionService) List(ctx context.Context, userID, walletID int64, filter db.TransactionFilter, page db.Pagination) ([]db.Transaction, int64, error) {
	if _, err := s.walletClient.GetOwnedWallet(ctx, userID, walletID); err != nil {
		return nil, 0, err
	}
	return s.store.ListTransactionsByWallet(ctx, walletID, filter, page)
}

// GroupedByMonth returns the wallet's transactions for the month as a flat
// list ordered by type blocks: the block with the larger amount sum first,
// descending amounts inside a block.
func (s *TransactionService) GroupedByMonth(ctx context.Context, userID, walletID int64, year int, month time.Month) ([]db.Transaction, error) {
	if _, err := s.walletClient.GetOwnedWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}
	return s.store.MonthTransactionsGrouped(ctx, walletID, year, month)
}
