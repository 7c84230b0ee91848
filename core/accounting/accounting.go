package accounting

import (
	"math/big"

	"github.com/samber/lo"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/core/records"
)

type Totals struct {
	TransactionCount int
	TotalIncoming    *big.Int
	TotalOutgoing    *big.Int
}

// Aggregator projects running totals out of the persisted disbursement
// records. There is no independent mutation path, so totals survive restarts
// by construction. Outgoing includes broadcast-but-unconfirmed transfers
// still sitting in the intent journal; incoming counts confirmed payouts
// only.
type Aggregator struct {
	store *records.Store
}

func NewAggregator(store *records.Store) *Aggregator {
	return &Aggregator{store: store}
}

func (aggregator *Aggregator) Snapshot() Totals {
	reports := aggregator.store.Reports()
	confirmed := lo.Reduce(reports, func(agg *big.Int, report common.DisbursementReport, _ int) *big.Int {
		return agg.Add(agg, report.GetAmount())
	}, new(big.Int))

	unconfirmed := lo.Reduce(aggregator.store.PendingIntents(), func(agg *big.Int, intent common.PendingIntent, _ int) *big.Int {
		if intent.TxHash == "" {
			return agg
		}
		return agg.Add(agg, intent.GetAmount())
	}, new(big.Int))

	return Totals{
		TransactionCount: len(reports),
		TotalIncoming:    confirmed,
		TotalOutgoing:    new(big.Int).Add(confirmed, unconfirmed),
	}
}
