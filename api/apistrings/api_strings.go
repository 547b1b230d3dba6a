package apistrings

const (
	/// Basic User Related Strings
	UserNotFound              = "user or account does not exist"
	UserDetailsAlreadyCreated = "email already exists"
	IncorrectEmailPass        = "incorrect email or password"
	InvalidRegisterInput      = "check 'first_name', 'last_name', 'email' or 'password' keys, invalid request"
	InvalidLoginInput         = "please enter a valid email and password"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"
	InvalidID   = "entered ID is invalid"

	/// Wallet Related Strings
	WalletNotFound     = "wallet does not exist"
	WalletNotYours     = "wallet does not belong to this account"
	InvalidWalletInput = "check 'name', 'currency' or 'initial_balance' keys, invalid request"

	/// Transaction Related Strings
	TransactionNotFound     = "transaction does not exist"
	InvalidTransactionInput = "check 'description', 'amount', 'type' or 'date' keys, invalid request"
	InvalidFilterInput      = "invalid filter or pagination query params"
	InvalidPeriodInput      = "check 'year' and 'month' query params, invalid request"
)
