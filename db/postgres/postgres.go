package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/lib/pq"
)

const uniqueViolation pq.ErrorCode = "23505"

// Store implements db.Store on top of PostgreSQL.
type Store struct {
	DB *sql.DB
}

func NewStore(conn *sql.DB) *Store {
	return &Store{DB: conn}
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return db.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return db.ErrAlreadyExists
	}
	return err
}

func (s *Store) CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error) {
	var u db.User
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, email, hashed_password, role, created_at, updated_at`,
		arg.FirstName, arg.LastName, arg.Email, arg.HashedPassword, arg.Role,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return db.User{}, fmt.Errorf("create user: %w", mapError(err))
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (db.User, error) {
	return s.scanUser(s.DB.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, hashed_password, role, created_at, updated_at
		FROM users WHERE id = $1`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	return s.scanUser(s.DB.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, hashed_password, role, created_at, updated_at
		FROM users WHERE email = $1`, email))
}

func (s *Store) scanUser(row *sql.Row) (db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return db.User{}, mapError(err)
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) CreateWallet(ctx context.Context, arg db.CreateWalletParams) (db.Wallet, error) {
	var w db.Wallet
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO wallets (user_id, name, currency, initial_balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, currency, initial_balance, created_at, updated_at`,
		arg.UserID, arg.Name, arg.Currency, arg.InitialBalance,
	).Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.InitialBalance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return db.Wallet{}, fmt.Errorf("create wallet: %w", mapError(err))
	}
	return w, nil
}

func (s *Store) GetWallet(ctx context.Context, id int64) (db.Wallet, error) {
	var w db.Wallet
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, currency, initial_balance, created_at, updated_at
		FROM wallets WHERE id = $1`, id,
	).Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.InitialBalance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return db.Wallet{}, mapError(err)
	}
	return w, nil
}

func (s *Store) ListWalletsByUser(ctx context.Context, userID int64) ([]db.Wallet, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, name, currency, initial_balance, created_at, updated_at
		FROM wallets WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []db.Wallet{}
	for rows.Next() {
		var w db.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.InitialBalance, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (s *Store) DeleteWallet(ctx context.Context, id int64) error {
	// transactions go with the wallet via ON DELETE CASCADE
	res, err := s.DB.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}
