package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/drip-capital/drippay/bot"
	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/accounting"
	"github.com/drip-capital/drippay/core/authorize"
	"github.com/drip-capital/drippay/core/disburse"
	"github.com/drip-capital/drippay/core/records"
	"github.com/drip-capital/drippay/core/wallet"
	"github.com/drip-capital/drippay/state"
	"github.com/drip-capital/drippay/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "runs the faucet bot",
	Long:  "listens for chat messages and dispenses ETH until stopped manually",
	Run: func(cmd *cobra.Command, args []string) {
		config, ledger := assertRunWithResult(loadConfigurationAndEngines, common.EXIT_CONFIGURATION_LOAD_FAILURE).Unwrap()

		store := assertRunWithResultAndErrorMessage(func() (*records.Store, error) {
			return records.Open(state.Global.GetRecordsDirectory())
		}, common.EXIT_RECORDS_LOCK_FAILURE, "failed to open record store")
		defer store.Close()

		faucetWallet := wallet.New()
		if credential := os.Getenv("DRIPPAY_WALLET_KEY"); credential != "" {
			address, err := faucetWallet.Initialize(credential)
			if err != nil {
				slog.Warn("failed to initialize wallet from environment", "error", err.Error())
			} else {
				slog.Info("wallet initialized from environment", "address", address.Hex())
			}
		}

		authorizer := authorize.NewAuthorizer(faucetWallet, store, config.Faucet.WhitelistCooldown)
		engine := disburse.NewEngine(ledger, faucetWallet, store, config.Faucet.DripAmount)
		aggregator := accounting.NewAggregator(store)

		router := bot.NewRouter(authorizer, engine, aggregator,
			notifyAdminFactory(config),
			func(report *common.DisbursementReport) {
				notifyDisbursementThroughAllNotificators(config, report)
			})

		frontend := assertRunWithResultAndErrorMessage(func() (*bot.TelegramBot, error) {
			return bot.InitTelegramBot(config.BotToken, router)
		}, common.EXIT_OPERATION_FAILED, "failed to initialize telegram bot")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		utils.CallbackOnInterrupt(ctx, func() {
			slog.Info("interrupt received, shutting down")
			cancel()
		})

		defer notifyAdmin(config, "Faucet stopped.")
		notifyAdmin(config, fmt.Sprintf("Faucet started (drippay %s, chain #%s, drip %s)",
			constants.VERSION, ledger.GetChainId().String(), common.WeiToEthS(config.Faucet.DripAmount)))
		slog.Info("faucet running", "chain_id", ledger.GetChainId().String(), "drip_amount", common.WeiToEthS(config.Faucet.DripAmount))

		if err := frontend.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("bot terminated", "error", err.Error())
			os.Exit(common.EXIT_OPERATION_FAILED)
		}
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}
