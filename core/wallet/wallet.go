package wallet

import (
	"crypto/ecdsa"
	"errors"
	"strings"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/drip-capital/drippay/constants"
)

// Wallet holds the sole signing credential of the faucet. Initialization is
// single-shot for the process lifetime - a second attempt is rejected and the
// existing credential stays in place.
type Wallet struct {
	mtx     sync.RWMutex
	key     *ecdsa.PrivateKey
	address ethcommon.Address
}

func New() *Wallet {
	return &Wallet{}
}

func (wallet *Wallet) Initialize(privateKeyHex string) (ethcommon.Address, error) {
	wallet.mtx.Lock()
	defer wallet.mtx.Unlock()
	if wallet.key != nil {
		return wallet.address, constants.ErrWalletAlreadyExists
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return ethcommon.Address{}, errors.Join(constants.ErrInvalidWalletKey, err)
	}

	wallet.key = key
	wallet.address = crypto.PubkeyToAddress(key.PublicKey)
	return wallet.address, nil
}

func (wallet *Wallet) IsInitialized() bool {
	wallet.mtx.RLock()
	defer wallet.mtx.RUnlock()
	return wallet.key != nil
}

func (wallet *Wallet) GetAddress() ethcommon.Address {
	wallet.mtx.RLock()
	defer wallet.mtx.RUnlock()
	return wallet.address
}

func (wallet *Wallet) GetKey() *ecdsa.PrivateKey {
	wallet.mtx.RLock()
	defer wallet.mtx.RUnlock()
	return wallet.key
}
