package mock

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/drip-capital/drippay/common"
)

var _ common.LedgerEngine = (*SimpleLedger)(nil)

// SimpleLedger is an in-memory ledger engine for tests. Behavior of each
// operation is programmable through the exported fields.
type SimpleLedger struct {
	Balance    *big.Int
	BalanceErr error
	Fee        *common.FeeSuggestion
	FeeErr     error
	SubmitErr  error
	ConfirmErr error

	Submitted []common.TransferParams
}

type simpleHandle struct {
	hash       ethcommon.Hash
	confirmErr error
}

func NewSimpleLedger(balance *big.Int) *SimpleLedger {
	return &SimpleLedger{
		Balance: balance,
		Fee: &common.FeeSuggestion{
			GasPrice: big.NewInt(1000000000),
			BaseFee:  big.NewInt(2000000000),
		},
	}
}

func (ledger *SimpleLedger) GetId() string {
	return "SimpleLedger"
}

func (ledger *SimpleLedger) GetChainId() *big.Int {
	return big.NewInt(42161)
}

func (ledger *SimpleLedger) GetBalance(ctx context.Context, address ethcommon.Address) (*big.Int, error) {
	if ledger.BalanceErr != nil {
		return nil, ledger.BalanceErr
	}
	return new(big.Int).Set(ledger.Balance), nil
}

func (ledger *SimpleLedger) GetFeeSuggestion(ctx context.Context) (*common.FeeSuggestion, error) {
	if ledger.FeeErr != nil {
		return nil, ledger.FeeErr
	}
	return ledger.Fee, nil
}

func (ledger *SimpleLedger) SubmitTransfer(ctx context.Context, key *ecdsa.PrivateKey, params common.TransferParams) (common.TransferHandle, error) {
	if ledger.SubmitErr != nil {
		return nil, ledger.SubmitErr
	}
	ledger.Submitted = append(ledger.Submitted, params)
	if ledger.ConfirmErr == nil {
		ledger.Balance = new(big.Int).Sub(ledger.Balance, params.Amount)
	}
	return &simpleHandle{
		hash:       ethcommon.HexToHash(fmt.Sprintf("0x%064x", len(ledger.Submitted))),
		confirmErr: ledger.ConfirmErr,
	}, nil
}

func (handle *simpleHandle) GetTxHash() ethcommon.Hash {
	return handle.hash
}

func (handle *simpleHandle) WaitForApply(ctx context.Context) error {
	return handle.confirmErr
}
