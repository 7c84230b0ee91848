package disburse

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/records"
	"github.com/drip-capital/drippay/core/wallet"
	"github.com/drip-capital/drippay/mock"
)

const (
	testKeyHex    = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testRecipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

var testDripAmount = big.NewInt(constants.DRIP_AMOUNT_WEI)

func newTestEngine(t *testing.T, ledger *mock.SimpleLedger) (*Engine, *records.Store) {
	store, err := records.Open(t.TempDir())
	assert.Nil(t, err)
	t.Cleanup(func() { store.Close() })

	faucetWallet := wallet.New()
	_, err = faucetWallet.Initialize(testKeyHex)
	assert.Nil(t, err)

	return NewEngine(ledger, faucetWallet, store, testDripAmount), store
}

func TestDisburse(t *testing.T) {
	assert := assert.New(t)

	ledger := mock.NewSimpleLedger(big.NewInt(constants.WEI_FACTOR))
	engine, store := newTestEngine(t, ledger)

	report, err := engine.Disburse(context.Background(), testRecipient)
	assert.Nil(err)
	assert.NotNil(report)
	assert.Equal(testRecipient, report.Recipient)
	assert.Equal(testDripAmount.String(), report.AmountWei)
	assert.NotEmpty(report.TxHash)
	assert.NotEmpty(report.RequestId)

	assert.Len(ledger.Submitted, 1)
	params := ledger.Submitted[0]
	assert.Equal(testDripAmount, params.Amount)
	assert.Equal(uint64(constants.TRANSFER_GAS_LIMIT), params.GasLimit)
	// maxFee = base fee + gas price, tip fixed
	assert.Equal(big.NewInt(3000000000), params.MaxFee)
	assert.Equal(common.GweiToWei(constants.PRIORITY_FEE_GWEI), params.TipCap)

	// the payout is durable before the caller sees the report
	assert.True(store.IsPaid(testRecipient))
	assert.Len(store.Reports(), 1)
	assert.Empty(store.PendingIntents())
}

func TestDisburseFeeFallback(t *testing.T) {
	assert := assert.New(t)

	ledger := mock.NewSimpleLedger(big.NewInt(constants.WEI_FACTOR))
	ledger.FeeErr = errors.New("node unavailable")
	engine, _ := newTestEngine(t, ledger)

	_, err := engine.Disburse(context.Background(), testRecipient)
	assert.Nil(err)

	fallback := common.GweiToWei(constants.FALLBACK_BASE_FEE_GWEI)
	assert.Equal(new(big.Int).Add(fallback, fallback), ledger.Submitted[0].MaxFee)
}

func TestDisburseInsufficientFunds(t *testing.T) {
	assert := assert.New(t)

	ledger := mock.NewSimpleLedger(new(big.Int).Sub(testDripAmount, big.NewInt(1)))
	engine, store := newTestEngine(t, ledger)

	_, err := engine.Disburse(context.Background(), testRecipient)
	assert.ErrorIs(err, constants.ErrInsufficientFunds)
	assert.Empty(ledger.Submitted)
	assert.False(store.IsPaid(testRecipient))
	assert.Empty(store.PendingIntents())
}

func TestDisburseBalanceCheckFailure(t *testing.T) {
	assert := assert.New(t)

	ledger := mock.NewSimpleLedger(big.NewInt(constants.WEI_FACTOR))
	ledger.BalanceErr = errors.New("node unavailable")
	engine, _ := newTestEngine(t, ledger)

	_, err := engine.Disburse(context.Background(), testRecipient)
	assert.ErrorIs(err, constants.ErrBalanceCheckFailed)
	assert.Empty(ledger.Submitted)
}

func TestDisburseSubmissionFailure(t *testing.T) {
	assert := assert.New(t)

	ledger := mock.NewSimpleLedger(big.NewInt(constants.WEI_FACTOR))
	ledger.SubmitErr = errors.New("nonce too low")
	engine, store := newTestEngine(t, ledger)

	_, err := engine.Disburse(context.Background(), testRecipient)
	assert.ErrorIs(err, constants.ErrSubmissionFailed)

	// nothing left the process, the journal entry is gone
	assert.Empty(store.PendingIntents())
	assert.False(store.IsPaid(testRecipient))
}

func TestDisburseConfirmationFailure(t *testing.T) {
	assert := assert.New(t)

	ledger := mock.NewSimpleLedger(big.NewInt(constants.WEI_FACTOR))
	ledger.ConfirmErr = errors.New("timed out awaiting receipt")
	engine, store := newTestEngine(t, ledger)

	_, err := engine.Disburse(context.Background(), testRecipient)
	assert.ErrorIs(err, constants.ErrConfirmationFailed)

	// the transfer may have landed on-chain, the journal entry stays behind
	pending := store.PendingIntents()
	assert.Len(pending, 1)
	assert.NotEmpty(pending[0].TxHash)
	assert.False(store.IsPaid(testRecipient))
	assert.Empty(store.Reports())
}
