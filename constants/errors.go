package constants

import "errors"

var (
	// miscellaneous

	ErrNotImplemented   = errors.New("not implemented")
	ErrUserNotConfirmed = errors.New("user not confirmed")

	// load

	ErrConfigurationLoadFailed       = errors.New("failed to load configuration")
	ErrConfigurationValidationFailed = errors.New("failed to validate configuration")
	ErrLedgerLoadFailed              = errors.New("failed to load ledger engine")
	ErrRecordStoreLoadFailed         = errors.New("failed to load record store")

	// authorization

	ErrWalletNotReady        = errors.New("wallet not ready")
	ErrWalletAlreadyExists   = errors.New("wallet already initialized")
	ErrInvalidWalletKey      = errors.New("invalid wallet private key")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrAlreadyPaid           = errors.New("address already paid")
	ErrWhitelistCooldown     = errors.New("whitelist cooldown active")
	ErrIdentityNotPermitted  = errors.New("identity not permitted")
	ErrEmptyRequesterIdentity = errors.New("empty requester identity")

	// disbursement

	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrFeeEstimationDegraded = errors.New("fee estimation degraded")
	ErrSubmissionFailed      = errors.New("failed to submit transfer")
	ErrConfirmationFailed    = errors.New("failed to confirm transfer")
	ErrBalanceCheckFailed    = errors.New("failed to check wallet balance")

	// records

	ErrPersistenceFailed      = errors.New("failed to persist record")
	ErrRecordsUnreadable      = errors.New("records unreadable, starting empty")
	ErrRecordsLocked          = errors.New("records directory locked by another process")
	ErrPendingIntentsResidual = errors.New("unresolved pending intents found")

	// notifications

	ErrUnsupportedNotificator          = errors.New("unsupported notificator")
	ErrInvalidNotificatorConfiguration = errors.New("invalid notificator configuration")
)
