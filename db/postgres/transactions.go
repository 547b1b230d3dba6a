package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/db"
)

const transactionColumns = "id, wallet_id, description, amount, type, occurred_at, created_at"

func (s *Store) CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	var t db.Transaction
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO transactions (wallet_id, description, amount, type, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+transactionColumns,
		arg.WalletID, arg.Description, arg.Amount, arg.Type, arg.OccurredAt,
	).Scan(&t.ID, &t.WalletID, &t.Description, &t.Amount, &t.Type, &t.OccurredAt, &t.CreatedAt)
	if err != nil {
		return db.Transaction{}, fmt.Errorf("create transaction: %w", mapError(err))
	}
	return t, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (db.Transaction, error) {
	var t db.Transaction
	err := s.DB.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.WalletID, &t.Description, &t.Amount, &t.Type, &t.OccurredAt, &t.CreatedAt)
	if err != nil {
		return db.Transaction{}, mapError(err)
	}
	return t, nil
}

// filterClauses builds the WHERE conditions for a wallet-scoped transaction
// query. Positional placeholders continue from the returned args slice.
func filterClauses(walletID int64, f db.TransactionFilter) ([]string, []interface{}) {
	where := []string{"wallet_id = $1"}
	args := []interface{}{walletID}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.DescriptionContains != nil {
		add("description LIKE $%d", "%"+*f.DescriptionContains+"%")
	}
	if f.MinAmount != nil {
		add("amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("amount <= $%d", *f.MaxAmount)
	}
	if f.From != nil {
		add("occurred_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("occurred_at < $%d", f.To.Add(24*time.Hour))
	}
	return where, args
}

func (s *Store) ListTransactionsByWallet(ctx context.Context, walletID int64, filter db.TransactionFilter, page db.Pagination) ([]db.Transaction, int64, error) {
	where, args := filterClauses(walletID, filter)
	cond := strings.Join(where, " AND ")

	var total int64
	err := s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE "+cond, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM transactions WHERE %s ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d",
		transactionColumns, cond, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	items, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) MonthTransactionsGrouped(ctx context.Context, walletID int64, year int, month time.Month) ([]db.Transaction, error) {
	start, end := db.MonthRange(year, month)
	rows, err := s.DB.QueryContext(ctx, `
		SELECT t.id, t.wallet_id, t.description, t.amount, t.type, t.occurred_at, t.created_at
		FROM transactions t
		JOIN (
			SELECT type, SUM(amount) AS type_total
			FROM transactions
			WHERE wallet_id = $1 AND occurred_at >= $2 AND occurred_at < $3
			GROUP BY type
		) g ON g.type = t.type
		WHERE t.wallet_id = $1 AND t.occurred_at >= $2 AND t.occurred_at < $3
		ORDER BY g.type_total DESC, t.type, t.amount DESC, t.occurred_at ASC, t.id ASC`,
		walletID, start, end)
	if err != nil {
		return nil, fmt.Errorf("month transactions grouped: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *Store) WalletBalanceSums(ctx context.Context, walletID int64) (db.BalanceSums, error) {
	var sums db.BalanceSums
	err := s.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0)::bigint,
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0)::bigint
		FROM transactions WHERE wallet_id = $1`, walletID,
	).Scan(&sums.Income, &sums.Expense)
	if err != nil {
		return db.BalanceSums{}, fmt.Errorf("wallet balance sums: %w", err)
	}
	return sums, nil
}

func (s *Store) BalanceSumsByUser(ctx context.Context, userID int64) (map[int64]db.BalanceSums, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT w.id,
		       COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount END), 0)::bigint,
		       COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount END), 0)::bigint
		FROM wallets w
		LEFT JOIN transactions t ON t.wallet_id = w.id
		WHERE w.user_id = $1
		GROUP BY w.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("balance sums by user: %w", err)
	}
	defer rows.Close()

	sums := make(map[int64]db.BalanceSums)
	for rows.Next() {
		var walletID int64
		var s db.BalanceSums
		if err := rows.Scan(&walletID, &s.Income, &s.Expense); err != nil {
			return nil, err
		}
		sums[walletID] = s
	}
	return sums, rows.Err()
}

func (s *Store) MonthSums(ctx context.Context, walletID int64, year int, month time.Month) (db.BalanceSums, error) {
	start, end := db.MonthRange(year, month)
	var sums db.BalanceSums
	err := s.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0)::bigint,
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0)::bigint
		FROM transactions
		WHERE wallet_id = $1 AND occurred_at >= $2 AND occurred_at < $3`,
		walletID, start, end,
	).Scan(&sums.Income, &sums.Expense)
	if err != nil {
		return db.BalanceSums{}, fmt.Errorf("month sums: %w", err)
	}
	return sums, nil
}

func (s *Store) TopExpensesByUser(ctx context.Context, userID int64, year int, month time.Month, limit int) (map[int64][]db.Transaction, error) {
	start, end := db.MonthRange(year, month)
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, wallet_id, description, amount, type, occurred_at, created_at
		FROM (
			SELECT t.*, ROW_NUMBER() OVER (
				PARTITION BY t.wallet_id ORDER BY t.amount DESC, t.id ASC
			) AS rn
			FROM transactions t
			JOIN wallets w ON w.id = t.wallet_id
			WHERE w.user_id = $1 AND t.type = 'expense'
			  AND t.occurred_at >= $2 AND t.occurred_at < $3
		) ranked
		WHERE rn <= $4
		ORDER BY wallet_id, rn`,
		userID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top expenses by user: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]db.Transaction)
	for rows.Next() {
		var t db.Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Description, &t.Amount, &t.Type, &t.OccurredAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		result[t.WalletID] = append(result[t.WalletID], t)
	}
	return result, rows.Err()
}

func scanTransactions(rows *sql.Rows) ([]db.Transaction, error) {
	items := []db.Transaction{}
	for rows.Next() {
		var t db.Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Description, &t.Amount, &t.Type, &t.OccurredAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
