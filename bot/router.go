package bot

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/accounting"
)

const (
	MSG_HELP = "Send your ETH address to receive ETH or use /setprivatekey <your_private_key> to initialize your wallet. " +
		"You can also use /total to get total transaction details. Only whitelisted users can send ETH directly."
	MSG_WALLET_INITIALIZED    = "Wallet initialized for address: %s"
	MSG_WALLET_INIT_FAILED    = "Wallet already initialized or error in initialization."
	MSG_WALLET_NOT_READY      = "Wallet not initialized. Please set your private key first using /setprivatekey <your_private_key>"
	MSG_WHITELIST_ADDED       = "Username %s added to whitelist."
	MSG_WHITELIST_PRESENT     = "Username %s is already whitelisted."
	MSG_ALREADY_PAID          = "This address has already received ETH."
	MSG_WHITELIST_COOLDOWN    = "You are on cooldown. Try again later."
	MSG_INSUFFICIENT_FUNDS    = "Insufficient funds in the wallet."
	MSG_INVALID_INPUT         = "Invalid input. Please provide a valid Ethereum address to receive ETH."
	MSG_TRANSACTION_SUCCESSFUL = "Transaction successful: %s"
	MSG_TOTALS                = "Total Incoming ETH: %s\nTotal Outgoing ETH: %s\nTotal Transactions: %d"

	CMD_START          = "/start"
	CMD_SET_PRIVATEKEY = "/setprivatekey "
	CMD_ADD_WHITELIST  = "/addwhitelist "
	CMD_TOTAL          = "/total"
)

var addressPattern = regexp.MustCompile(`0x[0-9a-fA-F]{40}`)

type InboundMessage struct {
	ChatId         int64
	SenderIdentity string
	Text           string
}

type Authorizer interface {
	Authorize(requesterIdentity string, targetAddress string) error
	AddWhitelistedIdentity(identity string) (bool, error)
	InitializeWallet(credential string) (ethcommon.Address, error)
	IsWhitelisted(identity string) bool
	NotePayout(requesterIdentity string)
}

type Disburser interface {
	Disburse(ctx context.Context, targetAddress string) (*common.DisbursementReport, error)
}

type TotalsProvider interface {
	Snapshot() accounting.Totals
}

// Router turns one inbound chat message into exactly one reply. All failures
// come back as human-readable text; nothing here crashes the process.
type Router struct {
	authorizer  Authorizer
	disburser   Disburser
	accounting  TotalsProvider
	adminNotify func(msg string)
	onDisbursed func(report *common.DisbursementReport)
}

func NewRouter(authorizer Authorizer, disburser Disburser, accounting TotalsProvider, adminNotify func(msg string), onDisbursed func(report *common.DisbursementReport)) *Router {
	if adminNotify == nil {
		adminNotify = func(string) {}
	}
	if onDisbursed == nil {
		onDisbursed = func(*common.DisbursementReport) {}
	}
	return &Router{
		authorizer:  authorizer,
		disburser:   disburser,
		accounting:  accounting,
		adminNotify: adminNotify,
		onDisbursed: onDisbursed,
	}
}

func (router *Router) Handle(ctx context.Context, msg InboundMessage) string {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == CMD_START:
		return MSG_HELP
	case strings.HasPrefix(text, CMD_SET_PRIVATEKEY):
		return router.handleSetPrivateKey(strings.TrimSpace(strings.TrimPrefix(text, CMD_SET_PRIVATEKEY)))
	case strings.HasPrefix(text, CMD_ADD_WHITELIST):
		return router.handleAddWhitelist(strings.TrimSpace(strings.TrimPrefix(text, CMD_ADD_WHITELIST)))
	case text == CMD_TOTAL:
		return router.handleTotal()
	}

	if ethcommon.IsHexAddress(text) {
		return router.handleDisburse(ctx, msg.SenderIdentity, text)
	}
	if router.authorizer.IsWhitelisted(msg.SenderIdentity) {
		if target, ok := extractAddress(text); ok {
			return router.handleDisburse(ctx, msg.SenderIdentity, target)
		}
		return MSG_INVALID_INPUT
	}
	return MSG_HELP
}

func (router *Router) handleSetPrivateKey(credential string) string {
	address, err := router.authorizer.InitializeWallet(credential)
	if err != nil {
		return MSG_WALLET_INIT_FAILED
	}
	return fmt.Sprintf(MSG_WALLET_INITIALIZED, address.Hex())
}

func (router *Router) handleAddWhitelist(identity string) string {
	added, err := router.authorizer.AddWhitelistedIdentity(identity)
	if err != nil {
		return fmt.Sprintf("Error: %s", err.Error())
	}
	if !added {
		return fmt.Sprintf(MSG_WHITELIST_PRESENT, identity)
	}
	return fmt.Sprintf(MSG_WHITELIST_ADDED, identity)
}

func (router *Router) handleTotal() string {
	totals := router.accounting.Snapshot()
	return fmt.Sprintf(MSG_TOTALS,
		formatEthTotal(totals.TotalIncoming),
		formatEthTotal(totals.TotalOutgoing),
		totals.TransactionCount)
}

func (router *Router) handleDisburse(ctx context.Context, requesterIdentity string, targetAddress string) string {
	switch err := router.authorizer.Authorize(requesterIdentity, targetAddress); {
	case err == nil:
	case errors.Is(err, constants.ErrWalletNotReady):
		return MSG_WALLET_NOT_READY
	case errors.Is(err, constants.ErrInvalidAddress):
		return MSG_INVALID_INPUT
	case errors.Is(err, constants.ErrAlreadyPaid):
		return MSG_ALREADY_PAID
	case errors.Is(err, constants.ErrWhitelistCooldown):
		return MSG_WHITELIST_COOLDOWN
	default:
		return fmt.Sprintf("Error: %s", err.Error())
	}

	report, err := router.disburser.Disburse(ctx, targetAddress)
	if err != nil {
		if errors.Is(err, constants.ErrInsufficientFunds) {
			return MSG_INSUFFICIENT_FUNDS
		}
		router.adminNotify(fmt.Sprintf("Disbursement to %s failed: %s", targetAddress, err.Error()))
		return fmt.Sprintf("Error: %s", err.Error())
	}
	router.authorizer.NotePayout(requesterIdentity)
	router.onDisbursed(report)
	return fmt.Sprintf(MSG_TRANSACTION_SUCCESSFUL, report.TxHash)
}

func extractAddress(text string) (string, bool) {
	for _, candidate := range addressPattern.FindAllString(text, -1) {
		if ethcommon.IsHexAddress(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func formatEthTotal(amount *big.Int) string {
	formatted := common.WeiToEthS(amount)
	if formatted == "" {
		return "0 ETH"
	}
	return formatted
}
