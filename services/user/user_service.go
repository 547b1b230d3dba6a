package user_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/CoinKeep/CoinKeep-Backend/db"
	"github.com/CoinKeep/CoinKeep-Backend/services/monitoring/logging"
	"github.com/CoinKeep/CoinKeep-Backend/utils"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type UserService struct {
	store  db.Store
	logger *logging.Logger
}

func NewUserService(store db.Store, logger *logging.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (u *UserService) Register(ctx context.Context, params RegisterParams) (db.User, error) {
	hashed, err := utils.GenerateHashValue(params.Password)
	if err != nil {
		return db.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.store.CreateUser(ctx, db.CreateUserParams{
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		HashedPassword: hashed,
		Role:           RoleUser,
	})
	if errors.Is(err, db.ErrAlreadyExists) {
		return db.User{}, ErrUserAlreadyExists
	} else if err != nil {
		return db.User{}, err
	}

	u.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

func (u *UserService) Authenticate(ctx context.Context, email, password string) (db.User, error) {
	user, err := u.store.GetUserByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		return db.User{}, ErrInvalidCredentials
	} else if err != nil {
		return db.User{}, err
	}

	if err := utils.VerifyHashValue(password, user.HashedPassword); err != nil {
		return db.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (u *UserService) GetProfile(ctx context.Context, userID int64) (db.User, error) {
	user, err := u.store.GetUserByID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return db.User{}, ErrUserNotFound
	}
	return user, err
}

// DeleteAccount removes the user together with every wallet and transaction
// hanging off the ownership tree.
func (u *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	err := u.store.DeleteUser(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}

	u.logger.WithField("user_id", userID).Info("user account deleted")
	return nil
}
