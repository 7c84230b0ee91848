package ledger_engines

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/configuration"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/utils"
)

type DefaultRpcLedger struct {
	rpcUrl               string
	client               *ethclient.Client
	chainId              *big.Int
	confirmationTimeout  time.Duration
	confirmationInterval time.Duration
}

type DefaultRpcLedgerOpResult struct {
	txHash   ethcommon.Hash
	client   *ethclient.Client
	timeout  time.Duration
	interval time.Duration
}

func (result *DefaultRpcLedgerOpResult) GetTxHash() ethcommon.Hash {
	return result.txHash
}

func (result *DefaultRpcLedgerOpResult) WaitForApply(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, result.timeout)
	defer cancel()
	utils.CallbackOnInterrupt(ctx, func() {
		slog.Warn("waiting for confirmation canceled", "tx_hash", result.txHash)
		cancel()
	})
	for {
		receipt, err := result.client.TransactionReceipt(ctx, result.txHash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusSuccessful {
				slog.Debug("transfer confirmed", "tx_hash", result.txHash, "gas_used", receipt.GasUsed)
				return nil
			}
			return errors.Join(constants.ErrConfirmationFailed, errors.New("transaction reverted"))
		case errors.Is(err, ethereum.NotFound):
			// not mined yet, keep polling
		case ctx.Err() != nil:
			return errors.Join(constants.ErrConfirmationFailed, ctx.Err())
		default:
			slog.Debug("transfer status check failed", "tx_hash", result.txHash, "error", err.Error())
		}
		utils.SleepContext(ctx, result.interval)
		if ctx.Err() != nil {
			return errors.Join(constants.ErrConfirmationFailed, ctx.Err())
		}
	}
}

func InitDefaultLedger(config *configuration.RuntimeConfiguration) (*DefaultRpcLedger, error) {
	client, err := ethclient.Dial(config.Network.RpcUrl)
	if err != nil {
		return nil, errors.Join(constants.ErrLedgerLoadFailed, err)
	}

	chainId, err := client.ChainID(context.Background())
	if err != nil {
		return nil, errors.Join(constants.ErrLedgerLoadFailed, err)
	}

	return &DefaultRpcLedger{
		rpcUrl:               config.Network.RpcUrl,
		client:               client,
		chainId:              chainId,
		confirmationTimeout:  config.Network.ConfirmationTimeout,
		confirmationInterval: config.Network.ConfirmationInterval,
	}, nil
}

func (ledger *DefaultRpcLedger) GetId() string {
	return "DefaultRpcLedger"
}

func (ledger *DefaultRpcLedger) GetChainId() *big.Int {
	return new(big.Int).Set(ledger.chainId)
}

func (ledger *DefaultRpcLedger) GetBalance(ctx context.Context, address ethcommon.Address) (*big.Int, error) {
	return ledger.client.BalanceAt(ctx, address, nil)
}

func (ledger *DefaultRpcLedger) GetFeeSuggestion(ctx context.Context) (*common.FeeSuggestion, error) {
	gasPrice, err := ledger.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	suggestion := &common.FeeSuggestion{
		GasPrice: gasPrice,
	}
	header, err := ledger.client.HeaderByNumber(ctx, nil)
	if err == nil && header.BaseFee != nil {
		suggestion.BaseFee = header.BaseFee
	}
	return suggestion, nil
}

func (ledger *DefaultRpcLedger) SubmitTransfer(ctx context.Context, key *ecdsa.PrivateKey, params common.TransferParams) (common.TransferHandle, error) {
	sender := crypto.PubkeyToAddress(key.PublicKey)
	nonce, err := ledger.client.PendingNonceAt(ctx, sender)
	if err != nil {
		return nil, err
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   ledger.chainId,
		Nonce:     nonce,
		GasTipCap: params.TipCap,
		GasFeeCap: params.MaxFee,
		Gas:       params.GasLimit,
		To:        &params.Recipient,
		Value:     params.Amount,
	})
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(ledger.chainId), key)
	if err != nil {
		return nil, err
	}

	err = ledger.client.SendTransaction(ctx, signedTx)
	if err != nil {
		return nil, err
	}
	slog.Debug("transfer broadcast", "tx_hash", signedTx.Hash(), "nonce", nonce)

	return &DefaultRpcLedgerOpResult{
		txHash:   signedTx.Hash(),
		client:   ledger.client,
		timeout:  ledger.confirmationTimeout,
		interval: ledger.confirmationInterval,
	}, nil
}
