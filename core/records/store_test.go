package records

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
)

func openTestStore(t *testing.T, directory string) *Store {
	store, err := Open(directory)
	assert.Nil(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(requestId string, recipient string) common.DisbursementReport {
	return common.DisbursementReport{
		RequestId: requestId,
		Recipient: recipient,
		AmountWei: "10000000000000",
		TxHash:    "0x00000000000000000000000000000000000000000000000000000000000000aa",
		Timestamp: common.NewTimestamp(time.Now()),
	}
}

func TestOpenOnEmptyDirectory(t *testing.T) {
	assert := assert.New(t)

	store := openTestStore(t, t.TempDir())
	assert.Empty(store.PaidAddresses())
	assert.Empty(store.WhitelistedIdentities())
	assert.Empty(store.Reports())
	assert.Empty(store.PendingIntents())
}

func TestCommitDisbursement(t *testing.T) {
	assert := assert.New(t)

	store := openTestStore(t, t.TempDir())
	recipient := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

	assert.False(store.IsPaid(recipient))
	assert.Nil(store.CommitDisbursement(sampleReport("r-1", recipient)))

	assert.True(store.IsPaid(recipient))
	// paid matching is case-insensitive
	assert.True(store.IsPaid("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"))
	assert.Len(store.Reports(), 1)
	assert.Equal("r-1", store.Reports()[0].RequestId)
}

func TestRecordsSurviveReopen(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()

	store, err := Open(directory)
	assert.Nil(err)
	recipient := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	added, err := store.AddWhitelistedIdentity("@alice")
	assert.True(added)
	assert.Nil(err)
	assert.Nil(store.CommitDisbursement(sampleReport("r-1", recipient)))
	assert.Nil(store.Close())

	reopened := openTestStore(t, directory)
	assert.True(reopened.IsPaid(recipient))
	assert.True(reopened.IsWhitelisted("alice"))
	assert.Len(reopened.Reports(), 1)
	report := reopened.Reports()[0]
	assert.Equal("r-1", report.RequestId)
	assert.Equal("10000000000000", report.AmountWei)
}

func TestAddWhitelistedIdentityIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	store := openTestStore(t, t.TempDir())
	added, err := store.AddWhitelistedIdentity("bob")
	assert.True(added)
	assert.Nil(err)

	// leading @ and surrounding whitespace normalize away
	added, err = store.AddWhitelistedIdentity(" @bob ")
	assert.False(added)
	assert.Nil(err)
	assert.True(store.IsWhitelisted("@bob"))
	assert.Len(store.WhitelistedIdentities(), 1)
}

func TestClearWhitelist(t *testing.T) {
	assert := assert.New(t)

	store := openTestStore(t, t.TempDir())
	store.AddWhitelistedIdentity("alice")
	store.AddWhitelistedIdentity("bob")

	assert.Nil(store.ClearWhitelist())
	assert.False(store.IsWhitelisted("alice"))
	assert.False(store.IsWhitelisted("bob"))
	assert.Empty(store.WhitelistedIdentities())
}

func TestPendingIntentLifecycle(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()

	store, err := Open(directory)
	assert.Nil(err)
	intent := common.PendingIntent{
		RequestId: "r-1",
		Recipient: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		AmountWei: "10000000000000",
		CreatedAt: common.NewTimestamp(time.Now()),
	}
	assert.Nil(store.JournalPendingIntent(intent))
	assert.Nil(store.UpdatePendingIntentTxHash("r-1", "0x00000000000000000000000000000000000000000000000000000000000000aa"))
	assert.Nil(store.Close())

	// intents left behind by a crash survive the restart
	reopened, err := Open(directory)
	assert.Nil(err)
	pending := reopened.PendingIntents()
	assert.Len(pending, 1)
	assert.Equal("0x00000000000000000000000000000000000000000000000000000000000000aa", pending[0].TxHash)

	assert.Nil(reopened.CommitDisbursement(sampleReport("r-1", intent.Recipient)))
	assert.Empty(reopened.PendingIntents())
	assert.Nil(reopened.Close())
}

func TestDropPendingIntent(t *testing.T) {
	assert := assert.New(t)

	store := openTestStore(t, t.TempDir())
	assert.Nil(store.JournalPendingIntent(common.PendingIntent{RequestId: "r-1", Recipient: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", AmountWei: "1"}))
	assert.Nil(store.DropPendingIntent("r-1"))
	assert.Empty(store.PendingIntents())
}

func TestCommitDisbursementKeepsPaidRecordWhenReportPersistFails(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()

	store := openTestStore(t, directory)
	recipient := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

	// a directory squatting on the report path makes the report write fail
	// while the paid-address write still succeeds
	assert.Nil(os.Mkdir(path.Join(directory, constants.DISBURSEMENT_REPORT_FILE_NAME), 0755))

	err := store.CommitDisbursement(sampleReport("r-1", recipient))
	assert.ErrorIs(err, constants.ErrPersistenceFailed)

	// the recipient must never become payable again after a partial commit
	assert.True(store.IsPaid(recipient))
	assert.Empty(store.Reports())
}

func TestCorruptRecordsDegradeToEmpty(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()

	assert.Nil(os.WriteFile(path.Join(directory, constants.PAID_ADDRESSES_FILE_NAME), []byte("{not json"), 0644))
	assert.Nil(os.WriteFile(path.Join(directory, constants.DISBURSEMENT_REPORT_FILE_NAME), []byte("not,a\nvalid~csv"), 0644))

	store := openTestStore(t, directory)
	assert.Empty(store.PaidAddresses())
	assert.Empty(store.Reports())

	// the store stays writable after degrading
	assert.Nil(store.CommitDisbursement(sampleReport("r-1", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")))
}
