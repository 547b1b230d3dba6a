package models

import (
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/services/report"
	"github.com/CoinKeep/CoinKeep-Backend/services/wallet"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
)

type CreateWalletParams struct {
	Name           string `json:"name" binding:"required"`
	Currency       string `json:"currency" binding:"required,iso4217"`
	InitialBalance int64  `json:"initial_balance" binding:"gte=0"`
}

type WalletResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	InitialBalance int64     `json:"initial_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WalletBalanceResponse carries the derived balance both in minor units and
// as a display string.
type WalletBalanceResponse struct {
	WalletResponse
	Balance        int64  `json:"balance"`
	DisplayBalance string `json:"display_balance"`
}

func ToWalletResponse(w *db.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:             w.ID,
		Name:           w.Name,
		Currency:       w.Currency,
		InitialBalance: w.InitialBalance,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func ToWalletBalanceResponse(w *wallet.WalletWithBalance) *WalletBalanceResponse {
	return &WalletBalanceResponse{
		WalletResponse: *ToWalletResponse(&w.Wallet),
		Balance:        w.Balance,
		DisplayBalance: utils.FormatMinorUnits(w.Balance),
	}
}

func ToWalletBalanceCollectionResponse(wallets []wallet.WalletWithBalance) []WalletBalanceResponse {
	responses := make([]WalletBalanceResponse, len(wallets))
	for i := range wallets {
		responses[i] = *ToWalletBalanceResponse(&wallets[i])
	}
	return responses
}

// PeriodQuery selects a calendar month for summaries and rankings.
type PeriodQuery struct {
	Year  int `form:"year" binding:"required,min=1970,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

type MonthlySummaryResponse struct {
	WalletID       int64  `json:"wallet_id"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	Income         int64  `json:"income"`
	Expense        int64  `json:"expense"`
	DisplayIncome  string `json:"display_income"`
	DisplayExpense string `json:"display_expense"`
}

func ToMonthlySummaryResponse(s *report.MonthlySummary) *MonthlySummaryResponse {
	return &MonthlySummaryResponse{
		WalletID:       s.WalletID,
		Name:           s.Name,
		Currency:       s.Currency,
		Year:           s.Year,
		Month:          int(s.Month),
		Income:         s.Income,
		Expense:        s.Expense,
		DisplayIncome:  utils.FormatMinorUnits(s.Income),
		DisplayExpense: utils.FormatMinorUnits(s.Expense),
	}
}

// WalletTopExpensesResponse is the densified per-wallet ranking view; every
// owned wallet appears, empty list when nothing qualified.
type WalletTopExpensesResponse struct {
	Wallet      WalletResponse        `json:"wallet"`
	TopExpenses []TransactionResponse `json:"top_expenses"`
}

func ToWalletTopExpensesCollectionResponse(views []report.WalletTopExpenses, refs *utils.ReferenceCodec) []WalletTopExpensesResponse {
	responses := make([]WalletTopExpensesResponse, len(views))
	for i, v := range views {
		responses[i] = WalletTopExpensesResponse{
			Wallet:      *ToWalletResponse(&views[i].Wallet),
			TopExpenses: ToTransactionCollectionResponse(v.Expenses, refs),
		}
	}
	return responses
}
