package transaction

import "fmt"

var (
	ErrTransactionNotFound = fmt.Errorf("transaction not found")
	ErrInvalidType         = fmt.Errorf("transaction type must be income or expense")
	ErrInvalidAmount       = fmt.Errorf("transaction amount must be positive")
)
