package authorize

import (
	"errors"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/core/records"
	"github.com/drip-capital/drippay/core/wallet"
)

// Authorizer decides whether a disbursement to a target address is permitted
// for a requester identity. The decision itself is pure - it only reads the
// wallet and record store snapshots.
type Authorizer struct {
	wallet *wallet.Wallet
	store  *records.Store

	// minimum delay between payouts triggered by the same whitelisted
	// identity; 0 preserves the unbounded bypass
	whitelistCooldown time.Duration
	cooldownMtx       sync.Mutex
	lastPayout        map[string]time.Time
}

func NewAuthorizer(wallet *wallet.Wallet, store *records.Store, whitelistCooldown time.Duration) *Authorizer {
	return &Authorizer{
		wallet:            wallet,
		store:             store,
		whitelistCooldown: whitelistCooldown,
		lastPayout:        map[string]time.Time{},
	}
}

// Authorize returns nil when the disbursement is allowed. Deny reasons, in
// rule order: ErrWalletNotReady, ErrInvalidAddress, ErrAlreadyPaid (unless
// the identity is whitelisted), ErrWhitelistCooldown.
func (authorizer *Authorizer) Authorize(requesterIdentity string, targetAddress string) error {
	if !authorizer.wallet.IsInitialized() {
		return constants.ErrWalletNotReady
	}
	if !ethcommon.IsHexAddress(targetAddress) {
		return constants.ErrInvalidAddress
	}
	if authorizer.store.IsPaid(targetAddress) {
		if !authorizer.store.IsWhitelisted(requesterIdentity) {
			return constants.ErrAlreadyPaid
		}
		if err := authorizer.checkCooldown(requesterIdentity); err != nil {
			return err
		}
	}
	return nil
}

func (authorizer *Authorizer) checkCooldown(requesterIdentity string) error {
	if authorizer.whitelistCooldown <= 0 {
		return nil
	}
	authorizer.cooldownMtx.Lock()
	defer authorizer.cooldownMtx.Unlock()
	if last, ok := authorizer.lastPayout[requesterIdentity]; ok && time.Since(last) < authorizer.whitelistCooldown {
		return constants.ErrWhitelistCooldown
	}
	return nil
}

// NotePayout records the time of a successful payout triggered by the
// identity, feeding the whitelist cooldown gate.
func (authorizer *Authorizer) NotePayout(requesterIdentity string) {
	authorizer.cooldownMtx.Lock()
	defer authorizer.cooldownMtx.Unlock()
	authorizer.lastPayout[requesterIdentity] = time.Now()
}

func (authorizer *Authorizer) AddWhitelistedIdentity(identity string) (bool, error) {
	if identity == "" {
		return false, constants.ErrEmptyRequesterIdentity
	}
	return authorizer.store.AddWhitelistedIdentity(identity)
}

func (authorizer *Authorizer) IsWhitelisted(identity string) bool {
	return authorizer.store.IsWhitelisted(identity)
}

// InitializeWallet performs the single-shot wallet setup and clears the
// whitelist as part of the reset. Fails without touching the existing wallet
// when one is already initialized.
func (authorizer *Authorizer) InitializeWallet(credential string) (ethcommon.Address, error) {
	address, err := authorizer.wallet.Initialize(credential)
	if err != nil {
		return address, err
	}
	if clearErr := authorizer.store.ClearWhitelist(); clearErr != nil {
		// wallet stays initialized, the stale whitelist is the lesser risk
		return address, errors.Join(constants.ErrPersistenceFailed, clearErr)
	}
	return address, nil
}
