package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"

	"github.com/drip-capital/drippay/constants"
)

const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestInitialize(t *testing.T) {
	assert := assert.New(t)

	wallet := New()
	assert.False(wallet.IsInitialized())

	address, err := wallet.Initialize(testKeyHex)
	assert.Nil(err)
	assert.True(wallet.IsInitialized())
	assert.Equal(address, wallet.GetAddress())

	key, _ := crypto.HexToECDSA(testKeyHex)
	assert.Equal(crypto.PubkeyToAddress(key.PublicKey), address)
}

func TestInitializeWithPrefix(t *testing.T) {
	assert := assert.New(t)

	wallet := New()
	address, err := wallet.Initialize("0x" + testKeyHex)
	assert.Nil(err)

	bare := New()
	bareAddress, _ := bare.Initialize(testKeyHex)
	assert.Equal(bareAddress, address)
}

func TestInitializeIsSingleShot(t *testing.T) {
	assert := assert.New(t)

	wallet := New()
	original, err := wallet.Initialize(testKeyHex)
	assert.Nil(err)

	address, err := wallet.Initialize("5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a")
	assert.ErrorIs(err, constants.ErrWalletAlreadyExists)
	assert.Equal(original, address)
	assert.Equal(original, wallet.GetAddress())
}

func TestInitializeRejectsInvalidKey(t *testing.T) {
	assert := assert.New(t)

	wallet := New()
	_, err := wallet.Initialize("not a key")
	assert.ErrorIs(err, constants.ErrInvalidWalletKey)
	assert.False(wallet.IsInitialized())

	_, err = wallet.Initialize("")
	assert.ErrorIs(err, constants.ErrInvalidWalletKey)
	assert.False(wallet.IsInitialized())
}
