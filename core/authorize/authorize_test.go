package authorize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/records"
	"github.com/drip-capital/drippay/core/wallet"
)

const (
	testKeyHex    = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testRecipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func newTestAuthorizer(t *testing.T, cooldown time.Duration) (*Authorizer, *records.Store) {
	store, err := records.Open(t.TempDir())
	assert.Nil(t, err)
	t.Cleanup(func() { store.Close() })
	return NewAuthorizer(wallet.New(), store, cooldown), store
}

func markPaid(t *testing.T, store *records.Store, recipient string) {
	err := store.CommitDisbursement(common.DisbursementReport{
		RequestId: "seed",
		Recipient: recipient,
		AmountWei: "1",
		Timestamp: common.NewTimestamp(time.Now()),
	})
	assert.Nil(t, err)
}

func TestAuthorizeRequiresInitializedWallet(t *testing.T) {
	assert := assert.New(t)

	authorizer, _ := newTestAuthorizer(t, 0)
	assert.ErrorIs(authorizer.Authorize("alice", testRecipient), constants.ErrWalletNotReady)

	_, err := authorizer.InitializeWallet(testKeyHex)
	assert.Nil(err)
	assert.Nil(authorizer.Authorize("alice", testRecipient))
}

func TestAuthorizeRejectsInvalidAddress(t *testing.T) {
	assert := assert.New(t)

	authorizer, _ := newTestAuthorizer(t, 0)
	authorizer.InitializeWallet(testKeyHex)

	assert.ErrorIs(authorizer.Authorize("alice", "not an address"), constants.ErrInvalidAddress)
	assert.ErrorIs(authorizer.Authorize("alice", "0x1234"), constants.ErrInvalidAddress)
}

func TestAuthorizeRejectsAlreadyPaid(t *testing.T) {
	assert := assert.New(t)

	authorizer, store := newTestAuthorizer(t, 0)
	authorizer.InitializeWallet(testKeyHex)
	markPaid(t, store, testRecipient)

	assert.ErrorIs(authorizer.Authorize("alice", testRecipient), constants.ErrAlreadyPaid)
}

func TestWhitelistBypassesAlreadyPaid(t *testing.T) {
	assert := assert.New(t)

	authorizer, store := newTestAuthorizer(t, 0)
	authorizer.InitializeWallet(testKeyHex)
	markPaid(t, store, testRecipient)

	added, err := authorizer.AddWhitelistedIdentity("alice")
	assert.True(added)
	assert.Nil(err)

	// without a cooldown the bypass is unbounded
	assert.Nil(authorizer.Authorize("alice", testRecipient))
	authorizer.NotePayout("alice")
	assert.Nil(authorizer.Authorize("alice", testRecipient))
}

func TestWhitelistCooldown(t *testing.T) {
	assert := assert.New(t)

	authorizer, store := newTestAuthorizer(t, time.Hour)
	authorizer.InitializeWallet(testKeyHex)
	markPaid(t, store, testRecipient)
	authorizer.AddWhitelistedIdentity("alice")

	assert.Nil(authorizer.Authorize("alice", testRecipient))
	authorizer.NotePayout("alice")
	assert.ErrorIs(authorizer.Authorize("alice", testRecipient), constants.ErrWhitelistCooldown)

	// the gate only guards repeat payouts to already paid addresses
	assert.Nil(authorizer.Authorize("alice", "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"))
}

func TestAddWhitelistedIdentityRejectsEmpty(t *testing.T) {
	assert := assert.New(t)

	authorizer, _ := newTestAuthorizer(t, 0)
	_, err := authorizer.AddWhitelistedIdentity("")
	assert.ErrorIs(err, constants.ErrEmptyRequesterIdentity)
}

func TestInitializeWalletClearsWhitelist(t *testing.T) {
	assert := assert.New(t)

	authorizer, _ := newTestAuthorizer(t, 0)
	authorizer.AddWhitelistedIdentity("alice")
	assert.True(authorizer.IsWhitelisted("alice"))

	_, err := authorizer.InitializeWallet(testKeyHex)
	assert.Nil(err)
	assert.False(authorizer.IsWhitelisted("alice"))

	// second attempt fails and leaves the whitelist alone
	authorizer.AddWhitelistedIdentity("bob")
	_, err = authorizer.InitializeWallet(testKeyHex)
	assert.ErrorIs(err, constants.ErrWalletAlreadyExists)
	assert.True(authorizer.IsWhitelisted("bob"))
}
