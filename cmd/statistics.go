package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/core/accounting"
	"github.com/drip-capital/drippay/core/records"
	"github.com/drip-capital/drippay/state"
	"github.com/drip-capital/drippay/utils"
)

var statisticsCmd = &cobra.Command{
	Use:   "statistics",
	Short: "prints faucet stats",
	Long:  "prints out disbursement totals collected from the record store",
	Run: func(cmd *cobra.Command, args []string) {
		withReports, _ := cmd.Flags().GetBool(REPORTS_FLAG)

		store := assertRunWithResultAndErrorMessage(func() (*records.Store, error) {
			return records.Open(state.Global.GetRecordsDirectory())
		}, common.EXIT_RECORDS_LOCK_FAILURE, "failed to open record store")
		defer store.Close()

		totals := accounting.NewAggregator(store).Snapshot()

		if state.Global.GetWantsOutputJson() {
			slog.Info("statistics generated",
				"transactions", totals.TransactionCount,
				"total_incoming_wei", totals.TotalIncoming.String(),
				"total_outgoing_wei", totals.TotalOutgoing.String(),
				"phase", "result")
			return
		}

		utils.PrintFaucetSummary(totals.TransactionCount,
			common.WeiToEthS(totals.TotalIncoming),
			common.WeiToEthS(totals.TotalOutgoing),
			"Faucet Statistics")
		if withReports {
			utils.PrintDisbursementReports(store.Reports(), "Disbursements")
		}
	},
}

func init() {
	statisticsCmd.Flags().Bool(REPORTS_FLAG, false, "prints individual disbursement rows as well")
	RootCmd.AddCommand(statisticsCmd)
}
