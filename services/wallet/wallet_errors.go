package wallet

import "fmt"

var (
	ErrWalletNotFound    = fmt.Errorf("wallet not found")
	ErrWalletNotPossible = fmt.Errorf("could not create wallet")
	ErrNotYours          = fmt.Errorf("you don't own this wallet")
)
