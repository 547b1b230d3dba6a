package report

import (
	"context"
	"errors"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
	"github.com/CoinKeep/CoinKeep-Backend/services/wallet"
)

// TopExpenseCount caps the expense ranking per wallet.
const TopExpenseCount = 3

type ReportService struct {
	store  db.Store
	logger *logging.Logger
}

func NewReportService(store db.Store, logger *logging.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger,
	}
}

// MonthlySummary sums the wallet's income and expense over
// [firstOfMonth, firstOfNextMonth). The wallet's existence gates the
// not-found error; a month without transactions yields zero sums.
func (r *ReportService) MonthlySummary(ctx context.Context, walletID int64, year int, month time.Month) (MonthlySummary, error) {
	found, err := r.store.GetWallet(ctx, walletID)
	if errors.Is(err, db.ErrNotFound) {
		return MonthlySummary{}, wallet.ErrWalletNotFound
	} else if err != nil {
		return MonthlySummary{}, err
	}

	sums, err := r.store.MonthSums(ctx, walletID, year, month)
	if err != nil {
		return MonthlySummary{}, err
	}

	return MonthlySummary{
		WalletID: found.ID,
		Name:     found.Name,
		Currency: found.Currency,
		Year:     year,
		Month:    month,
		Income:   sums.Income,
		Expense:  sums.Expense,
	}, nil
}

// TopThreeExpensesPerWallet is the raw sparse aggregate: up to three expense
// rows per owned wallet for the month, descending by amount with ties stable
// by id. Wallets without a qualifying expense are omitted from the map.
func (r *ReportService) TopThreeExpensesPerWallet(ctx context.Context, userID int64, year int, month time.Month) (map[int64][]db.Transaction, error) {
	return r.store.TopExpensesByUser(ctx, userID, year, month, TopExpenseCount)
}

// AssembleTopExpenses densifies the sparse ranking over the user's full
// wallet set: every owned wallet appears exactly once, with an empty expense
// list where the aggregate had no entry.
func (r *ReportService) AssembleTopExpenses(ctx context.Context, userID int64, year int, month time.Month) ([]WalletTopExpenses, error) {
	wallets, err := r.store.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked, err := r.TopThreeExpensesPerWallet(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	views := make([]WalletTopExpenses, len(wallets))
	for i, owned := range wallets {
		expenses := ranked[owned.ID]
		if expenses == nil {
			expenses = []db.Transaction{}
		}
		views[i] = WalletTopExpenses{
			Wallet:   owned,
			Expenses: expenses,
		}
	}
	return views, nil
}
