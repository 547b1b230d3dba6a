package wallet

import (
	"github.com/CoinKeep/CoinKeep-Backend/db"
)

// WalletWithBalance pairs a wallet with its derived balance. Balance is
// never persisted; it is recomputed from the transaction log on every read.
type WalletWithBalance struct {
	db.Wallet
	Balance int64
}
