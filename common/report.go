package common

import (
	"math/big"
	"time"
)

// DisbursementReport is the durable record of a single confirmed payout. One
// row per recipient, written to the disbursement report after confirmation.
type DisbursementReport struct {
	RequestId string    `csv:"request_id" json:"request_id"`
	Recipient string    `csv:"recipient" json:"recipient"`
	AmountWei string    `csv:"amount_wei" json:"amount_wei"`
	TxHash    string    `csv:"tx_hash" json:"tx_hash"`
	Timestamp Timestamp `csv:"timestamp" json:"timestamp"`
}

func (report *DisbursementReport) GetAmount() *big.Int {
	amount, ok := new(big.Int).SetString(report.AmountWei, 10)
	if !ok {
		return big.NewInt(0)
	}
	return amount
}

func (report *DisbursementReport) GetHeaders() []string {
	return []string{"Request Id", "Recipient", "Amount", "Tx Hash", "Timestamp"}
}

func (report *DisbursementReport) ToTableRow() []string {
	return []string{
		report.RequestId,
		ShortenAddress(report.Recipient),
		FormatWeiAmount(report.GetAmount()),
		report.TxHash,
		report.Timestamp.Time().Format(time.RFC3339),
	}
}

// PendingIntent is journaled before a transfer is broadcast and resolved when
// the matching report row is committed. Residual intents after a restart mark
// transfers which may have landed on-chain without being recorded.
type PendingIntent struct {
	RequestId string    `json:"request_id"`
	Recipient string    `json:"recipient"`
	AmountWei string    `json:"amount_wei"`
	TxHash    string    `json:"tx_hash,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

func (intent *PendingIntent) GetAmount() *big.Int {
	amount, ok := new(big.Int).SetString(intent.AmountWei, 10)
	if !ok {
		return big.NewInt(0)
	}
	return amount
}

// Timestamp marshals as RFC3339 in both csv and json.
type Timestamp time.Time

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Truncate(time.Second))
}

func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

func (ts Timestamp) MarshalCSV() (string, error) {
	return time.Time(ts).Format(time.RFC3339), nil
}

func (ts *Timestamp) UnmarshalCSV(csv string) error {
	t, err := time.Parse(time.RFC3339, csv)
	if err != nil {
		return err
	}
	*ts = Timestamp(t)
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(ts).Format(time.RFC3339) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	t, err := time.Parse(`"`+time.RFC3339+`"`, string(data))
	if err != nil {
		return err
	}
	*ts = Timestamp(t)
	return nil
}
