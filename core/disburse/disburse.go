package disburse

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/records"
	"github.com/drip-capital/drippay/core/wallet"
	"github.com/drip-capital/drippay/utils"
)

// Engine executes disbursements against the ledger. At most one transfer is
// in flight at a time - the wallet nonce and the record store are
// single-writer resources.
type Engine struct {
	mtx    sync.Mutex
	ledger common.LedgerEngine
	wallet *wallet.Wallet
	store  *records.Store

	dripAmount *big.Int
}

func NewEngine(ledger common.LedgerEngine, wallet *wallet.Wallet, store *records.Store, dripAmount *big.Int) *Engine {
	return &Engine{
		ledger:     ledger,
		wallet:     wallet,
		store:      store,
		dripAmount: dripAmount,
	}
}

func (engine *Engine) GetDripAmount() *big.Int {
	return new(big.Int).Set(engine.dripAmount)
}

// computeFees derives the transfer fee parameters from the current network
// suggestion. Missing or failed fee data degrades to a conservative fixed
// estimate - a transfer is always attempted when funds suffice.
func (engine *Engine) computeFees(ctx context.Context) (maxFee *big.Int, tipCap *big.Int) {
	fallback := common.GweiToWei(constants.FALLBACK_BASE_FEE_GWEI)
	gasPrice, baseFee := fallback, fallback

	suggestion, err := engine.ledger.GetFeeSuggestion(ctx)
	if err != nil || suggestion == nil || suggestion.GasPrice == nil {
		slog.Warn("fee estimation degraded, using fallback estimate",
			"error", errors.Join(constants.ErrFeeEstimationDegraded, err).Error())
	} else {
		gasPrice = suggestion.GasPrice
		if suggestion.BaseFee != nil {
			baseFee = suggestion.BaseFee
		} else {
			slog.Warn("node reported no base fee, using fallback", "fallback_gwei", constants.FALLBACK_BASE_FEE_GWEI)
		}
	}

	// additive on purpose - simple and safe, not fee-market optimal
	return utils.SumBig(baseFee, gasPrice), common.GweiToWei(constants.PRIORITY_FEE_GWEI)
}

// Disburse performs a single transfer attempt to the target address. Callers
// are expected to have passed authorization first; the engine does not
// re-check it. The paid record is committed only after the ledger confirms
// the transfer.
func (engine *Engine) Disburse(ctx context.Context, targetAddress string) (*common.DisbursementReport, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()

	requestId := uuid.New().String()
	recipient := ethcommon.HexToAddress(targetAddress)
	logger := slog.Default().With("request_id", requestId, "recipient", recipient.Hex())

	balance, err := engine.ledger.GetBalance(ctx, engine.wallet.GetAddress())
	if err != nil {
		return nil, errors.Join(constants.ErrBalanceCheckFailed, err)
	}
	logger.Debug("wallet balance checked", "balance", balance.String(), "drip_amount", engine.dripAmount.String())
	if balance.Cmp(engine.dripAmount) < 0 {
		return nil, constants.ErrInsufficientFunds
	}

	maxFee, tipCap := engine.computeFees(ctx)

	intent := common.PendingIntent{
		RequestId: requestId,
		Recipient: recipient.Hex(),
		AmountWei: engine.dripAmount.String(),
		CreatedAt: common.NewTimestamp(time.Now()),
	}
	if err := engine.store.JournalPendingIntent(intent); err != nil {
		return nil, err
	}

	handle, err := engine.ledger.SubmitTransfer(ctx, engine.wallet.GetKey(), common.TransferParams{
		Recipient: recipient,
		Amount:    engine.dripAmount,
		GasLimit:  constants.TRANSFER_GAS_LIMIT,
		MaxFee:    maxFee,
		TipCap:    tipCap,
	})
	if err != nil {
		// nothing left the process, the journal entry can go
		utils.WarnIfFailed(engine.store.DropPendingIntent(requestId), "failed to drop pending intent")
		return nil, errors.Join(constants.ErrSubmissionFailed, err)
	}
	txHash := handle.GetTxHash()
	logger = logger.With("tx_hash", txHash.Hex())
	logger.Info("transfer submitted")
	utils.WarnIfFailed(engine.store.UpdatePendingIntentTxHash(requestId, txHash.Hex()), "failed to update pending intent")

	protected := utils.StartNewProtectedSection("confirming transfer, do not interrupt")
	defer protected.Close()

	if err := handle.WaitForApply(ctx); err != nil {
		// the transfer may still land on-chain - the journal entry stays
		// behind as evidence until an operator resolves it
		logger.Error("transfer confirmation failed", "error", err.Error())
		return nil, errors.Join(constants.ErrConfirmationFailed, err)
	}

	report := common.DisbursementReport{
		RequestId: requestId,
		Recipient: recipient.Hex(),
		AmountWei: engine.dripAmount.String(),
		TxHash:    txHash.Hex(),
		Timestamp: common.NewTimestamp(time.Now()),
	}
	if err := engine.store.CommitDisbursement(report); err != nil {
		logger.Error("confirmed transfer could not be recorded", "error", err.Error())
		return nil, err
	}
	logger.Info("transfer confirmed and recorded")
	return &report, nil
}
