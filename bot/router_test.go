package bot

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/accounting"
	"github.com/drip-capital/drippay/mock"
)

const testRecipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

type fakeAuthorizer struct {
	authorizeErr  error
	whitelisted   map[string]bool
	initAddress   ethcommon.Address
	initErr       error
	addedIdentity string
	payouts       []string
}

func (fake *fakeAuthorizer) Authorize(requesterIdentity string, targetAddress string) error {
	return fake.authorizeErr
}

func (fake *fakeAuthorizer) AddWhitelistedIdentity(identity string) (bool, error) {
	if fake.addedIdentity == identity {
		return false, nil
	}
	fake.addedIdentity = identity
	return true, nil
}

func (fake *fakeAuthorizer) InitializeWallet(credential string) (ethcommon.Address, error) {
	return fake.initAddress, fake.initErr
}

func (fake *fakeAuthorizer) IsWhitelisted(identity string) bool {
	return fake.whitelisted[identity]
}

func (fake *fakeAuthorizer) NotePayout(requesterIdentity string) {
	fake.payouts = append(fake.payouts, requesterIdentity)
}

type fakeDisburser struct {
	report *common.DisbursementReport
	err    error
	target string
}

func (fake *fakeDisburser) Disburse(ctx context.Context, targetAddress string) (*common.DisbursementReport, error) {
	fake.target = targetAddress
	if fake.err != nil {
		return nil, fake.err
	}
	return fake.report, nil
}

type fakeTotals struct {
	totals accounting.Totals
}

func (fake *fakeTotals) Snapshot() accounting.Totals {
	return fake.totals
}

func newTestRouter(authorizer *fakeAuthorizer, disburser *fakeDisburser) (*Router, *mock.RecordingNotificator) {
	notificator := &mock.RecordingNotificator{}
	router := NewRouter(authorizer, disburser, &fakeTotals{}, func(msg string) {
		notificator.AdminNotify(msg)
	}, nil)
	return router, notificator
}

func successfulDisburser() *fakeDisburser {
	return &fakeDisburser{report: &common.DisbursementReport{
		RequestId: "r-1",
		Recipient: testRecipient,
		AmountWei: "10000000000000",
		TxHash:    "0xabc",
	}}
}

func TestHandleStart(t *testing.T) {
	assert := assert.New(t)

	router, _ := newTestRouter(&fakeAuthorizer{}, successfulDisburser())
	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/start"})
	assert.Equal(MSG_HELP, reply)
}

func TestHandleUnknownTextRepliesHelp(t *testing.T) {
	assert := assert.New(t)

	router, _ := newTestRouter(&fakeAuthorizer{}, successfulDisburser())
	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "hello there"})
	assert.Equal(MSG_HELP, reply)
}

func TestHandleSetPrivateKey(t *testing.T) {
	assert := assert.New(t)

	authorizer := &fakeAuthorizer{initAddress: ethcommon.HexToAddress(testRecipient)}
	router, _ := newTestRouter(authorizer, successfulDisburser())

	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/setprivatekey deadbeef"})
	assert.Equal(fmt.Sprintf(MSG_WALLET_INITIALIZED, ethcommon.HexToAddress(testRecipient).Hex()), reply)

	authorizer.initErr = constants.ErrWalletAlreadyExists
	reply = router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/setprivatekey deadbeef"})
	assert.Equal(MSG_WALLET_INIT_FAILED, reply)
}

func TestHandleAddWhitelist(t *testing.T) {
	assert := assert.New(t)

	router, _ := newTestRouter(&fakeAuthorizer{}, successfulDisburser())

	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/addwhitelist bob"})
	assert.Equal(fmt.Sprintf(MSG_WHITELIST_ADDED, "bob"), reply)

	reply = router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/addwhitelist bob"})
	assert.Equal(fmt.Sprintf(MSG_WHITELIST_PRESENT, "bob"), reply)
}

func TestHandleTotal(t *testing.T) {
	assert := assert.New(t)

	router := NewRouter(&fakeAuthorizer{}, successfulDisburser(), &fakeTotals{totals: accounting.Totals{
		TransactionCount: 2,
		TotalIncoming:    big.NewInt(15000000000000),
		TotalOutgoing:    big.NewInt(15000000000000),
	}}, nil, nil)

	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/total"})
	assert.Equal(fmt.Sprintf(MSG_TOTALS, "0.000015 ETH", "0.000015 ETH", 2), reply)
}

func TestHandleTotalZero(t *testing.T) {
	assert := assert.New(t)

	router := NewRouter(&fakeAuthorizer{}, successfulDisburser(), &fakeTotals{totals: accounting.Totals{
		TotalIncoming: big.NewInt(0),
		TotalOutgoing: big.NewInt(0),
	}}, nil, nil)

	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "/total"})
	assert.Equal(fmt.Sprintf(MSG_TOTALS, "0 ETH", "0 ETH", 0), reply)
}

func TestHandleAddressDisburses(t *testing.T) {
	assert := assert.New(t)

	authorizer := &fakeAuthorizer{}
	disburser := successfulDisburser()
	router, _ := newTestRouter(authorizer, disburser)

	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: testRecipient})
	assert.Equal(fmt.Sprintf(MSG_TRANSACTION_SUCCESSFUL, "0xabc"), reply)
	assert.Equal(testRecipient, disburser.target)
	assert.Equal([]string{"alice"}, authorizer.payouts)
}

func TestHandleAuthorizationDenials(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		err   error
		reply string
	}{
		{constants.ErrWalletNotReady, MSG_WALLET_NOT_READY},
		{constants.ErrInvalidAddress, MSG_INVALID_INPUT},
		{constants.ErrAlreadyPaid, MSG_ALREADY_PAID},
		{constants.ErrWhitelistCooldown, MSG_WHITELIST_COOLDOWN},
	}
	for _, c := range cases {
		router, _ := newTestRouter(&fakeAuthorizer{authorizeErr: c.err}, successfulDisburser())
		reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: testRecipient})
		assert.Equal(c.reply, reply)
	}
}

func TestHandleInsufficientFunds(t *testing.T) {
	assert := assert.New(t)

	router, notificator := newTestRouter(&fakeAuthorizer{}, &fakeDisburser{err: constants.ErrInsufficientFunds})
	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: testRecipient})
	assert.Equal(MSG_INSUFFICIENT_FUNDS, reply)
	assert.Empty(notificator.AdminMessages)
}

func TestHandleDisburseFailureNotifiesAdmin(t *testing.T) {
	assert := assert.New(t)

	router, notificator := newTestRouter(&fakeAuthorizer{}, &fakeDisburser{err: constants.ErrSubmissionFailed})
	reply := router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: testRecipient})
	assert.Contains(reply, "Error:")
	assert.Len(notificator.AdminMessages, 1)
	assert.Contains(notificator.AdminMessages[0], testRecipient)
}

func TestWhitelistedSenderAddressExtraction(t *testing.T) {
	assert := assert.New(t)

	authorizer := &fakeAuthorizer{whitelisted: map[string]bool{"alice": true}}
	disburser := successfulDisburser()
	router, _ := newTestRouter(authorizer, disburser)

	reply := router.Handle(context.Background(), InboundMessage{
		SenderIdentity: "alice",
		Text:           "please send to " + testRecipient + " thanks",
	})
	assert.Equal(fmt.Sprintf(MSG_TRANSACTION_SUCCESSFUL, "0xabc"), reply)
	assert.Equal(testRecipient, disburser.target)

	reply = router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: "no address in here"})
	assert.Equal(MSG_INVALID_INPUT, reply)
}

func TestNonWhitelistedSenderFreeTextGetsHelp(t *testing.T) {
	assert := assert.New(t)

	router, _ := newTestRouter(&fakeAuthorizer{}, successfulDisburser())
	reply := router.Handle(context.Background(), InboundMessage{
		SenderIdentity: "mallory",
		Text:           "please send to " + testRecipient + " thanks",
	})
	assert.Equal(MSG_HELP, reply)
}

func TestOnDisbursedCallback(t *testing.T) {
	assert := assert.New(t)

	var notified *common.DisbursementReport
	router := NewRouter(&fakeAuthorizer{}, successfulDisburser(), &fakeTotals{}, nil, func(report *common.DisbursementReport) {
		notified = report
	})

	router.Handle(context.Background(), InboundMessage{SenderIdentity: "alice", Text: testRecipient})
	assert.NotNil(notified)
	assert.Equal("0xabc", notified.TxHash)
}
