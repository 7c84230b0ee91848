package common

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// FeeSuggestion carries the current network fee parameters. BaseFee may be
// nil when the node does not report it; callers are expected to fall back to
// a conservative estimate instead of refusing to pay.
type FeeSuggestion struct {
	GasPrice *big.Int
	BaseFee  *big.Int
}

type TransferParams struct {
	Recipient ethcommon.Address
	Amount    *big.Int
	GasLimit  uint64
	MaxFee    *big.Int
	TipCap    *big.Int
}

// TransferHandle tracks a broadcast transfer until the ledger acknowledges it
// as finalized.
type TransferHandle interface {
	GetTxHash() ethcommon.Hash
	WaitForApply(ctx context.Context) error
}

type LedgerEngine interface {
	GetId() string
	GetBalance(ctx context.Context, address ethcommon.Address) (*big.Int, error)
	GetFeeSuggestion(ctx context.Context) (*FeeSuggestion, error)
	SubmitTransfer(ctx context.Context, key *ecdsa.PrivateKey, params TransferParams) (TransferHandle, error)
	GetChainId() *big.Int
}

type NotificatorEngine interface {
	DisbursementNotify(report *DisbursementReport, additionalData map[string]string) error
	AdminNotify(msg string) error
	TestNotify() error
}
