package configuration

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drip-capital/drippay/constants"
)

func TestLoadFromBytesDefaults(t *testing.T) {
	assert := assert.New(t)

	config, err := LoadFromBytes([]byte(`{
		bot_token: "123:abc"
	}`))
	assert.Nil(err)
	assert.Equal("123:abc", config.BotToken)
	assert.Equal(constants.DEFAULT_RPC_URL, config.Network.RpcUrl)
	assert.Equal(big.NewInt(constants.DRIP_AMOUNT_WEI), config.Faucet.DripAmount)
	assert.Equal(time.Duration(0), config.Faucet.WhitelistCooldown)
	assert.Equal(time.Duration(constants.DEFAULT_CONFIRMATION_TIMEOUT)*time.Second, config.Network.ConfirmationTimeout)
}

func TestLoadFromBytesOverrides(t *testing.T) {
	assert := assert.New(t)

	config, err := LoadFromBytes([]byte(`{
		bot_token: "123:abc"
		network: {
			rpc_url: "https://rpc.example.com"
			confirmation_timeout: 60
			confirmation_interval: 2
		}
		faucet: {
			drip_amount: 0.5
			whitelist_cooldown: 30
		}
	}`))
	assert.Nil(err)
	assert.Equal("https://rpc.example.com", config.Network.RpcUrl)
	assert.Equal(60*time.Second, config.Network.ConfirmationTimeout)
	assert.Equal(2*time.Second, config.Network.ConfirmationInterval)
	assert.Equal(big.NewInt(500000000000000000), config.Faucet.DripAmount)
	assert.Equal(30*time.Minute, config.Faucet.WhitelistCooldown)
}

func TestLoadFromBytesEnvOverrides(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("DRIPPAY_BOT_TOKEN", "env:token")
	t.Setenv("DRIPPAY_RPC_URL", "https://rpc.from.env")

	config, err := LoadFromBytes([]byte(`{
		bot_token: "123:abc"
		network: { rpc_url: "https://rpc.example.com" }
	}`))
	assert.Nil(err)
	assert.Equal("env:token", config.BotToken)
	assert.Equal("https://rpc.from.env", config.Network.RpcUrl)
}

func TestValidateRejectsInvalidRpcUrl(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadFromBytes([]byte(`{
		network: { rpc_url: "ftp://nope" }
	}`))
	assert.ErrorIs(err, constants.ErrConfigurationValidationFailed)
}

func TestValidateRejectsNegativeCooldown(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadFromBytes([]byte(`{
		faucet: { whitelist_cooldown: -5 }
	}`))
	assert.ErrorIs(err, constants.ErrConfigurationValidationFailed)
}

func TestValidateRejectsUnknownNotificator(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadFromBytes([]byte(`{
		notifications: [
			{ type: "carrier-pigeon" }
		]
	}`))
	assert.ErrorIs(err, constants.ErrConfigurationValidationFailed)
}

func TestFloatAmountToWei(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(big.NewInt(10000000000000), FloatAmountToWei(0.00001))
	assert.Equal(big.NewInt(1000000000000000000), FloatAmountToWei(1))
}
