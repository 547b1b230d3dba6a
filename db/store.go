package db

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a record referenced by id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a unique constraint is violated.
	ErrAlreadyExists = errors.New("record already exists")
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type User struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	HashedPassword string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Wallet struct {
	ID             int64
	UserID         int64
	Name           string
	Currency       string
	InitialBalance int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Transaction is immutable once written. Amount is always positive and held
// in minor currency units; the sign is carried by Type.
type Transaction struct {
	ID          int64
	WalletID    int64
	Description string
	Amount      int64
	Type        TransactionType
	OccurredAt  time.Time
	CreatedAt   time.Time
}

type CreateUserParams struct {
	FirstName      string
	LastName       string
	Email          string
	HashedPassword string
	Role           string
}

type CreateWalletParams struct {
	UserID         int64
	Name           string
	Currency       string
	InitialBalance int64
}

type CreateTransactionParams struct {
	WalletID    int64
	Description string
	Amount      int64
	Type        TransactionType
	OccurredAt  time.Time
}

// TransactionFilter predicates are optional and AND-combined.
type TransactionFilter struct {
	Type                *TransactionType
	DescriptionContains *string
	MinAmount           *int64
	MaxAmount           *int64
	From                *time.Time
	// To is inclusive and treated as end-of-day: rows strictly before
	// To+24h match.
	To *time.Time
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination is 1-indexed. Zero values fall back to page 1 / DefaultPageSize.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

type BalanceSums struct {
	Income  int64
	Expense int64
}

// MonthRange returns the half-open UTC range [firstOfMonth, firstOfNextMonth).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Store is the persistence boundary for users, wallets and their
// transaction logs, including the aggregation primitives the balance and
// reporting services are built on.
type Store interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	// DeleteUser removes the user and cascades to wallets and transactions.
	DeleteUser(ctx context.Context, id int64) error

	CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error)
	GetWallet(ctx context.Context, id int64) (Wallet, error)
	ListWalletsByUser(ctx context.Context, userID int64) ([]Wallet, error)
	// DeleteWallet removes the wallet and cascades to its transactions.
	DeleteWallet(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error)
	GetTransaction(ctx context.Context, id int64) (Transaction, error)
	// ListTransactionsByWallet returns the page of matching rows ordered by
	// occurred_at descending (id descending on equal dates) plus the total
	// match count. A page past the end yields an empty slice, not an error.
	ListTransactionsByWallet(ctx context.Context, walletID int64, filter TransactionFilter, page Pagination) ([]Transaction, int64, error)
	// MonthTransactionsGrouped returns the wallet's transactions for the
	// month as a flat list: type blocks ordered by descending amount sum,
	// rows within a block by descending amount then ascending date.
	MonthTransactionsGrouped(ctx context.Context, walletID int64, year int, month time.Month) ([]Transaction, error)

	// WalletBalanceSums sums income and expense over the wallet's whole log.
	WalletBalanceSums(ctx context.Context, walletID int64) (BalanceSums, error)
	// BalanceSumsByUser computes per-wallet sums for every wallet owned by
	// the user in a single grouped pass. Wallets without transactions map
	// to zero sums.
	BalanceSumsByUser(ctx context.Context, userID int64) (map[int64]BalanceSums, error)
	// MonthSums sums income and expense over [firstOfMonth, firstOfNextMonth).
	MonthSums(ctx context.Context, walletID int64, year int, month time.Month) (BalanceSums, error)
	// TopExpensesByUser returns up to limit expense rows per owned wallet in
	// the month, descending by amount with ties stable by id. Wallets with
	// no qualifying rows are omitted from the map.
	TopExpensesByUser(ctx context.Context, userID int64, year int, month time.Month, limit int) (map[int64][]Transaction, error)
}
