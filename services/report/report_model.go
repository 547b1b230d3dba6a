package report

import (
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
)

// MonthlySummary is the per-wallet income/expense total restricted to one
// calendar month.
type MonthlySummary struct {
	WalletID int64
	Name     string
	Currency string
	Year     int
	Month    time.Month
	Income   int64
	Expense  int64
}

// WalletTopExpenses is the densified per-wallet view: every owned wallet
// appears exactly once, wallets without qualifying expenses carry an empty
// list.
type WalletTopExpenses struct {
	Wallet   db.Wallet
	Expenses []db.Transaction
}
