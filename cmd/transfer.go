package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/utils"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <destination> <amount eth>",
	Short: "transfers ETH to specified address",
	Long:  "transfers ETH to specified address from the faucet wallet",
	Run: func(cmd *cobra.Command, args []string) {
		_, ledger := assertRunWithResult(loadConfigurationAndEngines, common.EXIT_CONFIGURATION_LOAD_FAILURE).Unwrap()
		wei, _ := cmd.Flags().GetBool(WEI_FLAG)
		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)

		if len(args) == 0 || len(args)%2 != 0 {
			slog.Error("invalid number of arguments (expects pairs of destination and amount)")
			os.Exit(common.EXIT_INVALID_ARGS)
		}

		credential := os.Getenv("DRIPPAY_WALLET_KEY")
		if credential == "" {
			slog.Error("no wallet key available, set DRIPPAY_WALLET_KEY")
			os.Exit(common.EXIT_INVALID_ARGS)
		}
		key, err := crypto.HexToECDSA(strings.TrimPrefix(credential, "0x"))
		if err != nil {
			slog.Error("invalid wallet key", "error", err.Error())
			os.Exit(common.EXIT_INVALID_ARGS)
		}

		total := new(big.Int)
		destinations := make([]string, 0, len(args)/2)
		amounts := make([]*big.Int, 0, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			if !ethcommon.IsHexAddress(args[i]) {
				slog.Error("invalid destination address", "address", args[i])
				os.Exit(common.EXIT_INVALID_ARGS)
			}
			amount, ok := parseTransferAmount(args[i+1], wei)
			if !ok || amount.Sign() <= 0 {
				slog.Error("invalid amount", "amount", args[i+1])
				os.Exit(common.EXIT_INVALID_ARGS)
			}
			total.Add(total, amount)
			destinations = append(destinations, ethcommon.HexToAddress(args[i]).Hex())
			amounts = append(amounts, amount)
		}

		if !confirmed {
			assertRequireConfirmation(fmt.Sprintf("do you really want to transfer %s to %s", common.WeiToEthS(total), strings.Join(destinations, ", ")))
		}

		ctx := context.Background()
		maxFee, tipCap := suggestTransferFees(ctx, ledger)

		for i, destination := range destinations {
			slog.Info("transferring ETH", "destination", destination, "amount", common.WeiToEthS(amounts[i]))
			handle, err := ledger.SubmitTransfer(ctx, key, common.TransferParams{
				Recipient: ethcommon.HexToAddress(destination),
				Amount:    amounts[i],
				GasLimit:  constants.TRANSFER_GAS_LIMIT,
				MaxFee:    maxFee,
				TipCap:    tipCap,
			})
			if err != nil {
				slog.Error("failed to submit transfer", "error", err.Error())
				os.Exit(common.EXIT_OPERATION_FAILED)
			}
			if err := handle.WaitForApply(ctx); err != nil {
				slog.Error("failed to confirm transfer", "tx_hash", handle.GetTxHash().Hex(), "error", err.Error())
				os.Exit(common.EXIT_OPERATION_FAILED)
			}
			slog.Info("transfer successful", "tx_hash", handle.GetTxHash().Hex())
		}
	},
}

func parseTransferAmount(raw string, wei bool) (*big.Int, bool) {
	if wei {
		amount, ok := new(big.Int).SetString(raw, 10)
		return amount, ok
	}
	amount, ok := new(big.Float).SetString(raw)
	if !ok {
		return nil, false
	}
	result, _ := new(big.Float).Mul(amount, big.NewFloat(constants.WEI_FACTOR)).Int(nil)
	return result, true
}

func suggestTransferFees(ctx context.Context, ledger common.LedgerEngine) (maxFee *big.Int, tipCap *big.Int) {
	fallback := common.GweiToWei(constants.FALLBACK_BASE_FEE_GWEI)
	gasPrice, baseFee := fallback, fallback
	if suggestion, err := ledger.GetFeeSuggestion(ctx); err == nil && suggestion != nil && suggestion.GasPrice != nil {
		gasPrice = suggestion.GasPrice
		if suggestion.BaseFee != nil {
			baseFee = suggestion.BaseFee
		}
	} else {
		slog.Warn("fee estimation degraded, using fallback estimate")
	}
	return utils.SumBig(baseFee, gasPrice), common.GweiToWei(constants.PRIORITY_FEE_GWEI)
}

func init() {
	transferCmd.Flags().Bool(WEI_FLAG, false, "amount in wei")
	transferCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms transfer")
	RootCmd.AddCommand(transferCmd)
}
